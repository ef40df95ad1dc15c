package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	domain "github.com/hanko-field/cartview/internal/domain"
	pfirestore "github.com/hanko-field/cartview/internal/platform/firestore"
	"github.com/hanko-field/cartview/internal/repositories"
)

const defaultShippingMethodCollection = "shippingMethods"

var _ repositories.ShippingMethodRepository = (*ShippingMethodRepository)(nil)

// ShippingMethodRepository reads localized shipping method rows. Each document is one method in one
// language and currency; rows of the same method share methodId.
type ShippingMethodRepository struct {
	reader *pfirestore.Reader[shippingMethodDocument]
}

// NewShippingMethodRepository constructs a Firestore-backed shipping method catalog.
func NewShippingMethodRepository(provider *pfirestore.Provider, collection string) (*ShippingMethodRepository, error) {
	if provider == nil {
		return nil, errors.New("shipping method repository requires firestore provider")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultShippingMethodCollection
	}
	return &ShippingMethodRepository{reader: pfirestore.NewReader[shippingMethodDocument](provider, collection, nil)}, nil
}

// GetShippingMethods implements repositories.ShippingMethodRepository.
func (r *ShippingMethodRepository) GetShippingMethods(ctx context.Context, marketID string, activeOnly bool) ([]domain.ShippingMethodInfo, error) {
	if r == nil || r.reader == nil {
		return nil, errors.New("shipping method repository not initialised")
	}
	marketID = strings.TrimSpace(marketID)
	docs, err := r.reader.Query(ctx, shippingMethodQuery(marketID, activeOnly))
	if err != nil {
		return nil, err
	}
	methods := make([]domain.ShippingMethodInfo, 0, len(docs))
	for _, doc := range docs {
		method, err := doc.Data.toDomain()
		if err != nil {
			return nil, fmt.Errorf("shipping method %s: %w", doc.ID, err)
		}
		methods = append(methods, method)
	}
	return methods, nil
}

func shippingMethodQuery(marketID string, activeOnly bool) pfirestore.QueryBuilder {
	return func(q firestore.Query) firestore.Query {
		q = q.Where("marketIds", "array-contains", marketID)
		if activeOnly {
			q = q.Where("active", "==", true)
		}
		return q.OrderBy("ordering", firestore.Asc)
	}
}

type shippingMethodDocument struct {
	MethodID     string   `firestore:"methodId"`
	Name         string   `firestore:"name"`
	DisplayName  string   `firestore:"displayName"`
	Description  string   `firestore:"description"`
	Language     string   `firestore:"language"`
	Currency     string   `firestore:"currency"`
	BasePrice    int64    `firestore:"basePrice"`
	PerItemPrice int64    `firestore:"perItemPrice"`
	Ordering     int      `firestore:"ordering"`
	Active       bool     `firestore:"active"`
	MarketIDs    []string `firestore:"marketIds"`
}

func (d shippingMethodDocument) toDomain() (domain.ShippingMethodInfo, error) {
	id, err := uuid.Parse(strings.TrimSpace(d.MethodID))
	if err != nil {
		return domain.ShippingMethodInfo{}, fmt.Errorf("invalid method id %q: %w", d.MethodID, err)
	}
	return domain.ShippingMethodInfo{
		MethodID:     id,
		Name:         d.Name,
		DisplayName:  d.DisplayName,
		Description:  d.Description,
		LanguageID:   strings.TrimSpace(d.Language),
		Currency:     domain.NormalizeCurrency(d.Currency),
		BasePrice:    d.BasePrice,
		PerItemPrice: d.PerItemPrice,
		Ordering:     d.Ordering,
		Active:       d.Active,
		MarketIDs:    append([]string(nil), d.MarketIDs...),
	}, nil
}
