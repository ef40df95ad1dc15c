package domain

import "github.com/google/uuid"

// AddressModel is the display form of a shipping address.
type AddressModel struct {
	AddressID   string  `json:"addressId,omitempty"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Line1       string  `json:"line1"`
	Line2       *string `json:"line2,omitempty"`
	City        string  `json:"city"`
	PostalCode  string  `json:"postalCode"`
	Region      *string `json:"region,omitempty"`
	CountryCode string  `json:"countryCode"`
	CountryName string  `json:"countryName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// CartItemViewModel is the display form of a line item.
type CartItemViewModel struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Quantity    int    `json:"quantity"`
	PlacedPrice Money  `json:"placedPrice"`
	Total       Money  `json:"total"`
}

// ShippingMethodViewModel is one selectable shipping option.
type ShippingMethodViewModel struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Price       Money     `json:"price"`
}

// ShipmentViewModel is the display-ready representation of one shipment.
// ShippingMethodID is uuid.Nil when no method is available.
type ShipmentViewModel struct {
	ShipmentID       string                    `json:"shipmentId"`
	Address          AddressModel              `json:"address"`
	CartItems        []CartItemViewModel       `json:"cartItems"`
	ShippingMethods  []ShippingMethodViewModel `json:"shippingMethods"`
	ShippingMethodID uuid.UUID                 `json:"shippingMethodId"`
}
