package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a customer's open basket grouped into order forms.
type Cart struct {
	ID         string
	Name       string
	CustomerID string
	MarketID   string
	Currency   string
	Forms      []OrderForm
	UpdatedAt  time.Time
}

// OrderForm groups the shipments of a cart.
type OrderForm struct {
	ID          string
	Name        string
	CouponCodes []string
	Shipments   []Shipment
}

// Shipment is a set of line items headed to one address via one shipping method.
// ShippingMethodID is uuid.Nil until a method has been chosen.
type Shipment struct {
	ID               string
	ShippingAddress  *OrderAddress
	LineItems        []LineItem
	ShippingMethodID uuid.UUID
}

// LineItem is a purchasable SKU inside a shipment. PlacedPrice is in minor units of the cart currency.
type LineItem struct {
	ID          string
	Code        string
	DisplayName string
	Quantity    int
	PlacedPrice int64
}

// OrderAddress is an address attached to an order.
type OrderAddress struct {
	ID          string
	FirstName   string
	LastName    string
	Line1       string
	Line2       *string
	City        string
	PostalCode  string
	Region      *string
	CountryCode string
	CountryName string
	Email       *string
	Phone       *string
}

// ItemCount returns the total quantity across the shipment's line items.
func (s Shipment) ItemCount() int {
	total := 0
	for _, item := range s.LineItems {
		if item.Quantity > 0 {
			total += item.Quantity
		}
	}
	return total
}

// Codes returns the distinct line item codes in first-seen order.
func (s Shipment) Codes() []string {
	seen := make(map[string]struct{}, len(s.LineItems))
	codes := make([]string, 0, len(s.LineItems))
	for _, item := range s.LineItems {
		if _, ok := seen[item.Code]; ok {
			continue
		}
		seen[item.Code] = struct{}{}
		codes = append(codes, item.Code)
	}
	return codes
}
