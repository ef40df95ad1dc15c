package repositories

import (
	"context"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsUnavailable() bool
}

// CartRepository reads carts.
type CartRepository interface {
	// GetCart returns the cart with the given ID. Should return a RepositoryError with IsNotFound
	// when the cart is absent.
	GetCart(ctx context.Context, cartID string) (domain.Cart, error)
}

// ShippingMethodRepository lists the shipping methods configured for markets.
type ShippingMethodRepository interface {
	// GetShippingMethods returns every localized method row available in the market, ordered by
	// catalog ordering. When activeOnly is set, inactive methods are omitted.
	GetShippingMethods(ctx context.Context, marketID string, activeOnly bool) ([]domain.ShippingMethodInfo, error)
}

// CatalogContentRepository loads catalog content for line item codes.
type CatalogContentRepository interface {
	// LoadContentItems returns the content entries for codes localized to lang. Unknown codes are
	// omitted from the result rather than reported as errors.
	LoadContentItems(ctx context.Context, codes []string, lang language.Tag) ([]domain.CatalogContent, error)
}

// Registry exposes the repositories backing shipment views and releases their resources on Close.
type Registry interface {
	Carts() CartRepository
	ShippingMethods() ShippingMethodRepository
	Content() CatalogContentRepository
	Close(ctx context.Context) error
}
