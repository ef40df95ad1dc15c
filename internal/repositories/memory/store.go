// Package memory provides in-process repositories seeded from YAML fixtures.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	domain "github.com/hanko-field/cartview/internal/domain"
	"github.com/hanko-field/cartview/internal/repositories"
)

var (
	_ repositories.CartRepository           = (*Store)(nil)
	_ repositories.ShippingMethodRepository = (*Store)(nil)
	_ repositories.CatalogContentRepository = (*Store)(nil)
)

// Error implements repositories.RepositoryError for the in-memory store.
type Error struct {
	op       string
	err      error
	notFound bool
}

// Error implements the error interface.
func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.err }

// IsNotFound reports whether the error represents a missing record.
func (e *Error) IsNotFound() bool { return e.notFound }

// IsUnavailable is always false for the in-memory store.
func (e *Error) IsUnavailable() bool { return false }

type contentEntry struct {
	base      domain.CatalogContent
	localized map[string]domain.CatalogContent
}

// Store holds carts, shipping methods, and catalog content in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	carts   map[string]domain.Cart
	methods []domain.ShippingMethodInfo
	content map[string]contentEntry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		carts:   make(map[string]domain.Cart),
		content: make(map[string]contentEntry),
	}
}

// PutCart stores or replaces a cart.
func (s *Store) PutCart(cart domain.Cart) error {
	id := strings.TrimSpace(cart.ID)
	if id == "" {
		return errors.New("memory: cart id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart.ID = id
	s.carts[id] = cloneCart(cart)
	return nil
}

// PutShippingMethod appends a localized shipping method row.
func (s *Store) PutShippingMethod(method domain.ShippingMethodInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	method.MarketIDs = slices.Clone(method.MarketIDs)
	s.methods = append(s.methods, method)
}

// PutContent stores catalog content. Entries with a Language are kept as translations of the code.
func (s *Store) PutContent(content domain.CatalogContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.content[content.Code]
	if !ok {
		entry = contentEntry{localized: make(map[string]domain.CatalogContent)}
	}
	if content.Language == "" || entry.base.Code == "" {
		entry.base = content
	}
	if content.Language != "" {
		entry.localized[content.Language] = content
	}
	s.content[content.Code] = entry
}

// GetCart implements repositories.CartRepository.
func (s *Store) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[strings.TrimSpace(cartID)]
	if !ok {
		return domain.Cart{}, &Error{op: "carts.get", err: fmt.Errorf("cart %q not found", cartID), notFound: true}
	}
	return cloneCart(cart), nil
}

// GetShippingMethods implements repositories.ShippingMethodRepository.
func (s *Store) GetShippingMethods(ctx context.Context, marketID string, activeOnly bool) ([]domain.ShippingMethodInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	marketID = strings.TrimSpace(marketID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ShippingMethodInfo, 0, len(s.methods))
	for _, method := range s.methods {
		if activeOnly && !method.Active {
			continue
		}
		if !slices.Contains(method.MarketIDs, marketID) {
			continue
		}
		method.MarketIDs = slices.Clone(method.MarketIDs)
		out = append(out, method)
	}
	slices.SortStableFunc(out, func(a, b domain.ShippingMethodInfo) int {
		return a.Ordering - b.Ordering
	})
	return out, nil
}

// LoadContentItems implements repositories.CatalogContentRepository.
func (s *Store) LoadContentItems(ctx context.Context, codes []string, lang language.Tag) ([]domain.CatalogContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CatalogContent, 0, len(codes))
	for _, code := range codes {
		entry, ok := s.content[code]
		if !ok {
			continue
		}
		out = append(out, entry.localize(lang))
	}
	return out, nil
}

func (e contentEntry) localize(lang language.Tag) domain.CatalogContent {
	if lang == language.Und {
		return e.base
	}
	if content, ok := e.localized[lang.String()]; ok {
		return content
	}
	base, _ := lang.Base()
	if content, ok := e.localized[base.String()]; ok {
		return content
	}
	return e.base
}

func cloneCart(cart domain.Cart) domain.Cart {
	forms := make([]domain.OrderForm, 0, len(cart.Forms))
	for _, form := range cart.Forms {
		shipments := make([]domain.Shipment, 0, len(form.Shipments))
		for _, shipment := range form.Shipments {
			if shipment.ShippingAddress != nil {
				addr := *shipment.ShippingAddress
				shipment.ShippingAddress = &addr
			}
			shipment.LineItems = slices.Clone(shipment.LineItems)
			shipments = append(shipments, shipment)
		}
		form.CouponCodes = slices.Clone(form.CouponCodes)
		form.Shipments = shipments
		forms = append(forms, form)
	}
	cart.Forms = forms
	return cart
}
