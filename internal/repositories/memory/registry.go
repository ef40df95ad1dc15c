package memory

import (
	"context"

	"github.com/hanko-field/cartview/internal/repositories"
)

var _ repositories.Registry = (*Store)(nil)

// Carts returns the store as a cart repository.
func (s *Store) Carts() repositories.CartRepository { return s }

// ShippingMethods returns the store as a shipping method repository.
func (s *Store) ShippingMethods() repositories.ShippingMethodRepository { return s }

// Content returns the store as a catalog content repository.
func (s *Store) Content() repositories.CatalogContentRepository { return s }

// Close is a no-op for the in-memory store.
func (s *Store) Close(context.Context) error { return nil }
