package firestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hanko-field/cartview/internal/platform/config"
	pfirestore "github.com/hanko-field/cartview/internal/platform/firestore"
	"github.com/hanko-field/cartview/internal/repositories"
)

var _ repositories.Registry = (*Registry)(nil)

// Registry groups the Firestore repositories sharing one provider.
type Registry struct {
	provider *pfirestore.Provider
	carts    *CartRepository
	methods  *ShippingMethodRepository
	content  *CatalogContentRepository
}

// NewRegistry builds every Firestore repository from the configured collection names.
func NewRegistry(provider *pfirestore.Provider, cfg config.FirestoreConfig) (*Registry, error) {
	if provider == nil {
		return nil, errors.New("firestore registry requires provider")
	}
	carts, err := NewCartRepository(provider, cfg.CartsCollection)
	if err != nil {
		return nil, fmt.Errorf("build cart repository: %w", err)
	}
	methods, err := NewShippingMethodRepository(provider, cfg.ShippingMethodsCollection)
	if err != nil {
		return nil, fmt.Errorf("build shipping method repository: %w", err)
	}
	content, err := NewCatalogContentRepository(provider, cfg.ContentCollection)
	if err != nil {
		return nil, fmt.Errorf("build catalog content repository: %w", err)
	}
	return &Registry{provider: provider, carts: carts, methods: methods, content: content}, nil
}

func (r *Registry) Carts() repositories.CartRepository { return r.carts }

func (r *Registry) ShippingMethods() repositories.ShippingMethodRepository { return r.methods }

func (r *Registry) Content() repositories.CatalogContentRepository { return r.content }

// Close releases the underlying Firestore client.
func (r *Registry) Close(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.provider.Close(ctx)
}
