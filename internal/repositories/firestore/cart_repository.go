package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/hanko-field/cartview/internal/domain"
	pfirestore "github.com/hanko-field/cartview/internal/platform/firestore"
	"github.com/hanko-field/cartview/internal/repositories"
)

const defaultCartCollection = "carts"

var _ repositories.CartRepository = (*CartRepository)(nil)

// CartRepository reads carts stored as one document per cart with embedded forms and shipments.
type CartRepository struct {
	reader *pfirestore.Reader[cartDocument]
}

// NewCartRepository constructs a Firestore-backed cart repository.
func NewCartRepository(provider *pfirestore.Provider, collection string) (*CartRepository, error) {
	if provider == nil {
		return nil, errors.New("cart repository requires firestore provider")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultCartCollection
	}
	return &CartRepository{reader: pfirestore.NewReader[cartDocument](provider, collection, nil)}, nil
}

// GetCart implements repositories.CartRepository.
func (r *CartRepository) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	if r == nil || r.reader == nil {
		return domain.Cart{}, errors.New("cart repository not initialised")
	}
	doc, err := r.reader.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return domain.Cart{}, err
	}
	return doc.Data.toDomain(doc.ID)
}

type cartDocument struct {
	Name       string              `firestore:"name"`
	CustomerID string              `firestore:"customerId"`
	MarketID   string              `firestore:"marketId"`
	Currency   string              `firestore:"currency"`
	Forms      []orderFormDocument `firestore:"forms"`
	UpdatedAt  time.Time           `firestore:"updatedAt"`
}

type orderFormDocument struct {
	ID          string             `firestore:"id"`
	Name        string             `firestore:"name"`
	CouponCodes []string           `firestore:"couponCodes"`
	Shipments   []shipmentDocument `firestore:"shipments"`
}

type shipmentDocument struct {
	ID               string             `firestore:"id"`
	ShippingMethodID string             `firestore:"shippingMethodId"`
	Address          *addressDocument   `firestore:"address"`
	LineItems        []lineItemDocument `firestore:"lineItems"`
}

type lineItemDocument struct {
	ID          string `firestore:"id"`
	Code        string `firestore:"code"`
	DisplayName string `firestore:"displayName"`
	Quantity    int    `firestore:"quantity"`
	PlacedPrice int64  `firestore:"placedPrice"`
}

type addressDocument struct {
	ID          string  `firestore:"id"`
	FirstName   string  `firestore:"firstName"`
	LastName    string  `firestore:"lastName"`
	Line1       string  `firestore:"line1"`
	Line2       *string `firestore:"line2"`
	City        string  `firestore:"city"`
	PostalCode  string  `firestore:"postalCode"`
	Region      *string `firestore:"region"`
	CountryCode string  `firestore:"countryCode"`
	CountryName string  `firestore:"countryName"`
	Email       *string `firestore:"email"`
	Phone       *string `firestore:"phone"`
}

func (d cartDocument) toDomain(id string) (domain.Cart, error) {
	cart := domain.Cart{
		ID:         id,
		Name:       d.Name,
		CustomerID: d.CustomerID,
		MarketID:   strings.TrimSpace(d.MarketID),
		Currency:   domain.NormalizeCurrency(d.Currency),
		UpdatedAt:  d.UpdatedAt.UTC(),
		Forms:      make([]domain.OrderForm, 0, len(d.Forms)),
	}
	for _, form := range d.Forms {
		shipments := make([]domain.Shipment, 0, len(form.Shipments))
		for _, shipment := range form.Shipments {
			methodID, err := parseMethodID(shipment.ShippingMethodID)
			if err != nil {
				return domain.Cart{}, fmt.Errorf("cart %s shipment %s: %w", id, shipment.ID, err)
			}
			items := make([]domain.LineItem, 0, len(shipment.LineItems))
			for _, item := range shipment.LineItems {
				items = append(items, domain.LineItem(item))
			}
			shipments = append(shipments, domain.Shipment{
				ID:               shipment.ID,
				ShippingAddress:  shipment.Address.toDomain(),
				LineItems:        items,
				ShippingMethodID: methodID,
			})
		}
		cart.Forms = append(cart.Forms, domain.OrderForm{
			ID:          form.ID,
			Name:        form.Name,
			CouponCodes: append([]string(nil), form.CouponCodes...),
			Shipments:   shipments,
		})
	}
	return cart, nil
}

func (d *addressDocument) toDomain() *domain.OrderAddress {
	if d == nil {
		return nil
	}
	addr := domain.OrderAddress(*d)
	return &addr
}

func parseMethodID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid shipping method id %q: %w", raw, err)
	}
	return id, nil
}
