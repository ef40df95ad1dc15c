package domain

import "github.com/google/uuid"

// Market is a sales region with its own currencies and languages.
type Market struct {
	ID              string
	Name            string
	DefaultCurrency string
	Currencies      []string
	DefaultLanguage string
	Languages       []string
	Countries       []string
}

// SupportsCurrency reports whether code is one of the market's currencies.
func (m Market) SupportsCurrency(code string) bool {
	if sameCurrency(m.DefaultCurrency, code) {
		return true
	}
	for _, c := range m.Currencies {
		if sameCurrency(c, code) {
			return true
		}
	}
	return false
}

// ShippingMethodInfo is a catalog entry for a shipping method, localized to one language and currency.
type ShippingMethodInfo struct {
	MethodID     uuid.UUID
	Name         string
	DisplayName  string
	Description  string
	LanguageID   string
	Currency     string
	BasePrice    int64
	PerItemPrice int64
	Ordering     int
	Active       bool
	MarketIDs    []string
}

// ShippingRate is the computed price of a shipping method for a shipment.
type ShippingRate struct {
	MethodID uuid.UUID
	Name     string
	Price    Money
}
