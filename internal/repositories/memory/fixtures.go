package memory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	domain "github.com/hanko-field/cartview/internal/domain"
)

type fixtureFile struct {
	Carts           []cartFixture           `yaml:"carts"`
	ShippingMethods []shippingMethodFixture `yaml:"shippingMethods"`
	Content         []contentFixture        `yaml:"content"`
}

type cartFixture struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	CustomerID string        `yaml:"customerId"`
	MarketID   string        `yaml:"marketId"`
	Currency   string        `yaml:"currency"`
	UpdatedAt  time.Time     `yaml:"updatedAt"`
	Forms      []formFixture `yaml:"forms"`
}

type formFixture struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	CouponCodes []string          `yaml:"couponCodes"`
	Shipments   []shipmentFixture `yaml:"shipments"`
}

type shipmentFixture struct {
	ID               string            `yaml:"id"`
	ShippingMethodID string            `yaml:"shippingMethodId"`
	Address          *addressFixture   `yaml:"address"`
	LineItems        []lineItemFixture `yaml:"lineItems"`
}

type lineItemFixture struct {
	ID          string `yaml:"id"`
	Code        string `yaml:"code"`
	DisplayName string `yaml:"displayName"`
	Quantity    int    `yaml:"quantity"`
	PlacedPrice int64  `yaml:"placedPrice"`
}

type addressFixture struct {
	ID          string  `yaml:"id"`
	FirstName   string  `yaml:"firstName"`
	LastName    string  `yaml:"lastName"`
	Line1       string  `yaml:"line1"`
	Line2       *string `yaml:"line2"`
	City        string  `yaml:"city"`
	PostalCode  string  `yaml:"postalCode"`
	Region      *string `yaml:"region"`
	CountryCode string  `yaml:"countryCode"`
	CountryName string  `yaml:"countryName"`
	Email       *string `yaml:"email"`
	Phone       *string `yaml:"phone"`
}

type shippingMethodFixture struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	DisplayName  string   `yaml:"displayName"`
	Description  string   `yaml:"description"`
	Language     string   `yaml:"language"`
	Currency     string   `yaml:"currency"`
	BasePrice    int64    `yaml:"basePrice"`
	PerItemPrice int64    `yaml:"perItemPrice"`
	Ordering     int      `yaml:"ordering"`
	Active       *bool    `yaml:"active"`
	Markets      []string `yaml:"markets"`
}

type contentFixture struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"displayName"`
	URL         string `yaml:"url"`
	ImageURL    string `yaml:"imageUrl"`
	Brand       string `yaml:"brand"`
	Language    string `yaml:"language"`
}

// LoadFixtures reads a YAML fixture file into a new store.
func LoadFixtures(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memory: read fixtures %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes a YAML fixture document into a new store. Shipping methods default to active.
func ParseFixtures(data []byte) (*Store, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("memory: decode fixtures: %w", err)
	}

	store := NewStore()
	for _, fixture := range file.Carts {
		cart, err := fixture.toDomain()
		if err != nil {
			return nil, err
		}
		if err := store.PutCart(cart); err != nil {
			return nil, err
		}
	}
	for _, fixture := range file.ShippingMethods {
		method, err := fixture.toDomain()
		if err != nil {
			return nil, err
		}
		store.PutShippingMethod(method)
	}
	for _, fixture := range file.Content {
		if strings.TrimSpace(fixture.Code) == "" {
			return nil, fmt.Errorf("memory: content fixture without code")
		}
		store.PutContent(domain.CatalogContent(fixture))
	}
	return store, nil
}

func (f cartFixture) toDomain() (domain.Cart, error) {
	cart := domain.Cart{
		ID:         strings.TrimSpace(f.ID),
		Name:       f.Name,
		CustomerID: f.CustomerID,
		MarketID:   strings.TrimSpace(f.MarketID),
		Currency:   domain.NormalizeCurrency(f.Currency),
		UpdatedAt:  f.UpdatedAt,
	}
	for _, form := range f.Forms {
		out := domain.OrderForm{ID: form.ID, Name: form.Name, CouponCodes: form.CouponCodes}
		for _, shipment := range form.Shipments {
			methodID, err := parseOptionalUUID(shipment.ShippingMethodID)
			if err != nil {
				return domain.Cart{}, fmt.Errorf("memory: cart %s shipment %s: %w", f.ID, shipment.ID, err)
			}
			var addr *domain.OrderAddress
			if shipment.Address != nil {
				converted := domain.OrderAddress(*shipment.Address)
				addr = &converted
			}
			items := make([]domain.LineItem, 0, len(shipment.LineItems))
			for _, item := range shipment.LineItems {
				items = append(items, domain.LineItem(item))
			}
			out.Shipments = append(out.Shipments, domain.Shipment{
				ID:               shipment.ID,
				ShippingAddress:  addr,
				LineItems:        items,
				ShippingMethodID: methodID,
			})
		}
		cart.Forms = append(cart.Forms, out)
	}
	return cart, nil
}

func (f shippingMethodFixture) toDomain() (domain.ShippingMethodInfo, error) {
	id, err := uuid.Parse(strings.TrimSpace(f.ID))
	if err != nil {
		return domain.ShippingMethodInfo{}, fmt.Errorf("memory: shipping method %q: %w", f.Name, err)
	}
	active := true
	if f.Active != nil {
		active = *f.Active
	}
	return domain.ShippingMethodInfo{
		MethodID:     id,
		Name:         f.Name,
		DisplayName:  f.DisplayName,
		Description:  f.Description,
		LanguageID:   strings.TrimSpace(f.Language),
		Currency:     domain.NormalizeCurrency(f.Currency),
		BasePrice:    f.BasePrice,
		PerItemPrice: f.PerItemPrice,
		Ordering:     f.Ordering,
		Active:       active,
		MarketIDs:    f.Markets,
	}, nil
}

func parseOptionalUUID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
