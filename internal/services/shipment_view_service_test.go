package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hanko-field/cartview/internal/domain"
)

type stubCartRepository struct {
	getFunc func(ctx context.Context, cartID string) (domain.Cart, error)
}

func (s *stubCartRepository) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.getFunc(ctx, cartID)
}

type notFoundError struct{}

func (notFoundError) Error() string       { return "cart missing" }
func (notFoundError) IsNotFound() bool    { return true }
func (notFoundError) IsUnavailable() bool { return false }

func TestShipmentViewServiceGetShipments(t *testing.T) {
	repo := &stubCartRepository{
		getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
			if cartID != "cart-1" {
				t.Fatalf("unexpected cart id %q", cartID)
			}
			return singleShipmentCart(), nil
		},
	}
	service, err := NewShipmentViewService(ShipmentViewServiceDeps{Carts: repo, Factory: newTestFactory(t, factoryOverrides{})})
	if err != nil {
		t.Fatalf("unexpected error constructing service: %v", err)
	}

	got, err := service.GetShipments(context.Background(), " cart-1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ShipmentID != "shipment-1" {
		t.Fatalf("unexpected shipments %+v", got)
	}
}

func TestShipmentViewServiceMapsNotFound(t *testing.T) {
	repo := &stubCartRepository{
		getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
			return domain.Cart{}, notFoundError{}
		},
	}
	service, _ := NewShipmentViewService(ShipmentViewServiceDeps{Carts: repo, Factory: newTestFactory(t, factoryOverrides{})})
	if _, err := service.GetShipments(context.Background(), "cart-x"); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestShipmentViewServiceValidatesInput(t *testing.T) {
	repo := &stubCartRepository{getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
		t.Fatalf("repository must not be called")
		return domain.Cart{}, nil
	}}
	service, _ := NewShipmentViewService(ShipmentViewServiceDeps{Carts: repo, Factory: newTestFactory(t, factoryOverrides{})})
	if _, err := service.GetShipments(context.Background(), "  "); !errors.Is(err, ErrShipmentInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestShipmentViewServicePropagatesRepositoryErrors(t *testing.T) {
	repoErr := errors.New("firestore unavailable")
	repo := &stubCartRepository{getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
		return domain.Cart{}, repoErr
	}}
	service, _ := NewShipmentViewService(ShipmentViewServiceDeps{Carts: repo, Factory: newTestFactory(t, factoryOverrides{})})
	if _, err := service.GetShipments(context.Background(), "cart-1"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
