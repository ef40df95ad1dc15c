package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
)

var (
	errEnricherContentRequired = errors.New("line item enricher: content loader is required")
	errEnricherItemsRequired   = errors.New("line item enricher: cart item factory is required")
)

// LineItemEnricherDeps bundles the collaborators of the enricher.
type LineItemEnricherDeps struct {
	Content ContentLoader
	Items   CartItemViewModelFactory
}

type lineItemEnricher struct {
	content ContentLoader
	items   CartItemViewModelFactory
}

// NewLineItemEnricher constructs an enricher that loads all content of a shipment in one call.
func NewLineItemEnricher(deps LineItemEnricherDeps) (LineItemEnricher, error) {
	if deps.Content == nil {
		return nil, errEnricherContentRequired
	}
	if deps.Items == nil {
		return nil, errEnricherItemsRequired
	}
	return &lineItemEnricher{content: deps.Content, items: deps.Items}, nil
}

// EnrichLineItems maps each line item to a view model positionally. A line item without content
// fails the whole shipment with ErrCartItemContentMissing.
func (e *lineItemEnricher) EnrichLineItems(ctx context.Context, cart domain.Cart, shipment domain.Shipment, lang language.Tag) ([]domain.CartItemViewModel, error) {
	if e == nil || e.content == nil || e.items == nil {
		return nil, ErrShipmentViewUnavailable
	}
	if len(shipment.LineItems) == 0 {
		return []domain.CartItemViewModel{}, nil
	}

	contents, err := e.content.LoadContentItems(ctx, shipment.Codes(), lang)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]domain.CatalogContent, len(contents))
	for _, content := range contents {
		if _, exists := byCode[content.Code]; !exists {
			byCode[content.Code] = content
		}
	}

	out := make([]domain.CartItemViewModel, len(shipment.LineItems))
	for i, item := range shipment.LineItems {
		content, ok := byCode[item.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCartItemContentMissing, item.Code)
		}
		out[i] = e.items.CreateCartItemViewModel(cart, item, content)
	}
	return out, nil
}
