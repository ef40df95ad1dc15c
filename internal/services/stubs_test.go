package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
)

func strPtr(v string) *string {
	return &v
}

type stubCatalog struct {
	getFunc func(ctx context.Context, marketID string, activeOnly bool) ([]domain.ShippingMethodInfo, error)
}

func (s *stubCatalog) GetShippingMethods(ctx context.Context, marketID string, activeOnly bool) ([]domain.ShippingMethodInfo, error) {
	if s.getFunc == nil {
		return nil, nil
	}
	return s.getFunc(ctx, marketID, activeOnly)
}

type stubRateEngine struct {
	rateFunc func(ctx context.Context, shipment domain.Shipment, method domain.ShippingMethodInfo, market domain.Market) (domain.ShippingRate, error)
}

func (s *stubRateEngine) GetRate(ctx context.Context, shipment domain.Shipment, method domain.ShippingMethodInfo, market domain.Market) (domain.ShippingRate, error) {
	if s.rateFunc == nil {
		return TableRateEngine{}.GetRate(ctx, shipment, method, market)
	}
	return s.rateFunc(ctx, shipment, method, market)
}

type stubContentLoader struct {
	loadFunc func(ctx context.Context, codes []string, lang language.Tag) ([]domain.CatalogContent, error)
}

func (s *stubContentLoader) LoadContentItems(ctx context.Context, codes []string, lang language.Tag) ([]domain.CatalogContent, error) {
	if s.loadFunc == nil {
		out := make([]domain.CatalogContent, 0, len(codes))
		for _, code := range codes {
			out = append(out, domain.CatalogContent{Code: code, DisplayName: "Item " + code, Language: lang.String()})
		}
		return out, nil
	}
	return s.loadFunc(ctx, codes, lang)
}

type stubAddressConverter struct {
	convertFunc func(addr *domain.OrderAddress, lang language.Tag) domain.AddressModel
}

func (s *stubAddressConverter) ToAddressModel(addr *domain.OrderAddress, lang language.Tag) domain.AddressModel {
	if s.convertFunc == nil {
		if addr == nil {
			return domain.AddressModel{}
		}
		return domain.AddressModel{AddressID: addr.ID, City: addr.City}
	}
	return s.convertFunc(addr, lang)
}

type stubLineItemEnricher struct {
	enrichFunc func(ctx context.Context, cart domain.Cart, shipment domain.Shipment, lang language.Tag) ([]domain.CartItemViewModel, error)
}

func (s *stubLineItemEnricher) EnrichLineItems(ctx context.Context, cart domain.Cart, shipment domain.Shipment, lang language.Tag) ([]domain.CartItemViewModel, error) {
	if s.enrichFunc == nil {
		out := make([]domain.CartItemViewModel, 0, len(shipment.LineItems))
		for _, item := range shipment.LineItems {
			out = append(out, domain.CartItemViewModel{Code: item.Code, Quantity: item.Quantity})
		}
		return out, nil
	}
	return s.enrichFunc(ctx, cart, shipment, lang)
}

type stubMarkets struct {
	markets map[string]domain.Market
}

func (s *stubMarkets) Market(_ context.Context, marketID string) (domain.Market, error) {
	market, ok := s.markets[marketID]
	if !ok {
		return domain.Market{}, fmt.Errorf("unknown market %q", marketID)
	}
	return market, nil
}

type stubLanguages struct {
	preferred language.Tag
	current   language.Tag
}

func (s stubLanguages) PreferredCulture(context.Context) language.Tag { return s.preferred }
func (s stubLanguages) CurrentLanguage(context.Context) language.Tag  { return s.current }

type recordingObserver struct {
	mu         sync.Mutex
	shipments  []int
	assemblies []error
}

func (o *recordingObserver) ObserveShipment(_ context.Context, _ string, methods int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shipments = append(o.shipments, methods)
}

func (o *recordingObserver) ObserveAssembly(_ context.Context, _ string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.assemblies = append(o.assemblies, err)
}

var usMarket = domain.Market{
	ID:              "US",
	Name:            "United States",
	DefaultCurrency: "USD",
	Currencies:      []string{"USD"},
	DefaultLanguage: "en",
	Languages:       []string{"en"},
}
