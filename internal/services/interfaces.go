package services

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
	"github.com/hanko-field/cartview/internal/repositories"
)

// ContentLoader loads catalog content for line item codes in a language.
type ContentLoader = repositories.CatalogContentRepository

// ShippingMethodCatalog lists the shipping methods of a market.
type ShippingMethodCatalog = repositories.ShippingMethodRepository

// RateEngine computes the price of a shipping method for a shipment.
type RateEngine interface {
	GetRate(ctx context.Context, shipment domain.Shipment, method domain.ShippingMethodInfo, market domain.Market) (domain.ShippingRate, error)
}

// AddressConverter maps an order address to its display model, naming the country in lang.
// A nil address maps to the zero model.
type AddressConverter interface {
	ToAddressModel(addr *domain.OrderAddress, lang language.Tag) domain.AddressModel
}

// CartItemViewModelFactory maps one line item and its content to a cart item view model.
type CartItemViewModelFactory interface {
	CreateCartItemViewModel(cart domain.Cart, item domain.LineItem, content domain.CatalogContent) domain.CartItemViewModel
}

// LineItemEnricher produces one cart item view model per line item of a shipment, in line item order.
type LineItemEnricher interface {
	EnrichLineItems(ctx context.Context, cart domain.Cart, shipment domain.Shipment, lang language.Tag) ([]domain.CartItemViewModel, error)
}

// LanguageResolver exposes the languages of the current request.
type LanguageResolver interface {
	// PreferredCulture is the language content is loaded in.
	PreferredCulture(ctx context.Context) language.Tag
	// CurrentLanguage is the language shipping methods are filtered by.
	CurrentLanguage(ctx context.Context) language.Tag
}

// MarketResolver resolves market configuration by ID.
type MarketResolver interface {
	Market(ctx context.Context, marketID string) (domain.Market, error)
}

// ShippingRateResolver resolves the priced shipping methods eligible for a shipment.
type ShippingRateResolver interface {
	Resolve(ctx context.Context, req ShippingRequest) ([]domain.ShippingRate, error)
}

// ShipmentViewModelFactory builds one view model per shipment of a cart.
type ShipmentViewModelFactory interface {
	CreateShipmentsViewModel(ctx context.Context, cart domain.Cart) ([]domain.ShipmentViewModel, error)
}

// ShipmentViewService loads carts and returns their shipment view models.
type ShipmentViewService interface {
	GetShipments(ctx context.Context, cartID string) ([]domain.ShipmentViewModel, error)
}

// ShipmentObserver receives assembly measurements. Implementations must be safe for concurrent use.
type ShipmentObserver interface {
	ObserveShipment(ctx context.Context, marketID string, methods int)
	ObserveAssembly(ctx context.Context, marketID string, elapsed time.Duration, err error)
}
