package firestore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

func TestCartDocumentToDomain(t *testing.T) {
	methodID := uuid.New()
	line2 := "Suite 4"
	doc := cartDocument{
		Name:      "Default",
		MarketID:  " US ",
		Currency:  "usd",
		UpdatedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		Forms: []orderFormDocument{{
			ID: "form-1",
			Shipments: []shipmentDocument{
				{
					ID:               "shipment-1",
					ShippingMethodID: methodID.String(),
					Address:          &addressDocument{ID: "addr-1", Line2: &line2, CountryCode: "US"},
					LineItems:        []lineItemDocument{{ID: "li-1", Code: "sku-1", Quantity: 2, PlacedPrice: 1500}},
				},
				{ID: "shipment-2"},
			},
		}},
	}

	cart, err := doc.toDomain("cart-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "cart-1" || cart.MarketID != "US" || cart.Currency != "USD" {
		t.Fatalf("unexpected cart header %+v", cart)
	}
	if len(cart.Forms) != 1 || len(cart.Forms[0].Shipments) != 2 {
		t.Fatalf("unexpected forms %+v", cart.Forms)
	}
	first := cart.Forms[0].Shipments[0]
	if first.ShippingMethodID != methodID {
		t.Fatalf("expected method id %s, got %s", methodID, first.ShippingMethodID)
	}
	if first.ShippingAddress == nil || first.ShippingAddress.Line2 == nil || *first.ShippingAddress.Line2 != "Suite 4" {
		t.Fatalf("unexpected address %+v", first.ShippingAddress)
	}
	if first.LineItems[0].Code != "sku-1" || first.LineItems[0].PlacedPrice != 1500 {
		t.Fatalf("unexpected line item %+v", first.LineItems[0])
	}
	second := cart.Forms[0].Shipments[1]
	if second.ShippingMethodID != uuid.Nil || second.ShippingAddress != nil {
		t.Fatalf("expected empty selection and address, got %+v", second)
	}
}

func TestCartDocumentRejectsInvalidMethodID(t *testing.T) {
	doc := cartDocument{Forms: []orderFormDocument{{Shipments: []shipmentDocument{{ID: "s", ShippingMethodID: "not-a-uuid"}}}}}
	if _, err := doc.toDomain("cart-1"); err == nil {
		t.Fatalf("expected error for invalid method id")
	}
}

func TestShippingMethodDocumentToDomain(t *testing.T) {
	id := uuid.New()
	method, err := shippingMethodDocument{MethodID: id.String(), Name: "ground", Language: " en ", Currency: "usd", BasePrice: 500, Active: true}.toDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method.MethodID != id || method.LanguageID != "en" || method.Currency != "USD" || !method.Active {
		t.Fatalf("unexpected method %+v", method)
	}
	if _, err := (shippingMethodDocument{MethodID: "bad"}).toDomain(); err == nil {
		t.Fatalf("expected error for invalid id")
	}
}

func TestContentDocumentLocalize(t *testing.T) {
	doc := contentDocument{
		Name:        "Shoe",
		DisplayName: "Trail shoe",
		URL:         "/en/shoe",
		Language:    "en",
		Localized: map[string]localizedDocument{
			"sv": {DisplayName: "Löparsko", URL: "/sv/sko"},
		},
	}

	sv := doc.localize("shoe", language.MustParse("sv-SE"))
	if sv.DisplayName != "Löparsko" || sv.URL != "/sv/sko" || sv.Language != "sv" {
		t.Fatalf("unexpected swedish content %+v", sv)
	}
	if sv.Name != "Shoe" {
		t.Fatalf("expected untranslated fields to fall back, got %q", sv.Name)
	}

	de := doc.localize("shoe", language.German)
	if de.DisplayName != "Trail shoe" || de.Language != "en" || de.Code != "shoe" {
		t.Fatalf("unexpected fallback content %+v", de)
	}
}

func TestRepositoriesRequireProvider(t *testing.T) {
	if _, err := NewCartRepository(nil, ""); err == nil {
		t.Fatalf("expected error for nil provider")
	}
	if _, err := NewShippingMethodRepository(nil, ""); err == nil {
		t.Fatalf("expected error for nil provider")
	}
	if _, err := NewCatalogContentRepository(nil, ""); err == nil {
		t.Fatalf("expected error for nil provider")
	}
}
