package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hanko-field/cartview/internal/domain"
)

// CartItemFactory builds cart item view models from line items and catalog content.
// Display names come from the CMS and are reduced to plain text.
type CartItemFactory struct {
	policy *bluemonday.Policy
}

// NewCartItemFactory constructs the default cart item factory.
func NewCartItemFactory() *CartItemFactory {
	return &CartItemFactory{policy: bluemonday.StrictPolicy()}
}

// CreateCartItemViewModel implements CartItemViewModelFactory.
func (f *CartItemFactory) CreateCartItemViewModel(cart domain.Cart, item domain.LineItem, content domain.CatalogContent) domain.CartItemViewModel {
	placed := domain.NewMoney(item.PlacedPrice, cart.Currency)
	return domain.CartItemViewModel{
		Code:        item.Code,
		DisplayName: f.displayName(item, content),
		URL:         strings.TrimSpace(content.URL),
		ImageURL:    strings.TrimSpace(content.ImageURL),
		Brand:       f.plain(content.Brand),
		Quantity:    item.Quantity,
		PlacedPrice: placed,
		Total:       placed.Mul(int64(item.Quantity)),
	}
}

func (f *CartItemFactory) displayName(item domain.LineItem, content domain.CatalogContent) string {
	for _, candidate := range []string{content.DisplayName, content.Name, item.DisplayName} {
		if name := f.plain(candidate); name != "" {
			return name
		}
	}
	return item.Code
}

func (f *CartItemFactory) plain(value string) string {
	policy := bluemonday.StrictPolicy()
	if f != nil && f.policy != nil {
		policy = f.policy
	}
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(value)))
}
