package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hanko-field/cartview/internal/domain"
	"github.com/hanko-field/cartview/internal/repositories"
)

var (
	errViewServiceCartsRequired   = errors.New("shipment view service: cart repository is required")
	errViewServiceFactoryRequired = errors.New("shipment view service: view model factory is required")
)

// ShipmentViewServiceDeps bundles the collaborators of the service.
type ShipmentViewServiceDeps struct {
	Carts   repositories.CartRepository
	Factory ShipmentViewModelFactory
	Logger  func(context.Context, string, map[string]any)
}

type shipmentViewService struct {
	carts   repositories.CartRepository
	factory ShipmentViewModelFactory
	logger  func(context.Context, string, map[string]any)
}

// NewShipmentViewService constructs the service.
func NewShipmentViewService(deps ShipmentViewServiceDeps) (ShipmentViewService, error) {
	if deps.Carts == nil {
		return nil, errViewServiceCartsRequired
	}
	if deps.Factory == nil {
		return nil, errViewServiceFactoryRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &shipmentViewService{carts: deps.Carts, factory: deps.Factory, logger: logger}, nil
}

// GetShipments loads the cart and assembles its shipment view models.
func (s *shipmentViewService) GetShipments(ctx context.Context, cartID string) ([]domain.ShipmentViewModel, error) {
	if s == nil || s.carts == nil || s.factory == nil {
		return nil, ErrShipmentViewUnavailable
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, fmt.Errorf("%w: cart id is required", ErrShipmentInvalidInput)
	}

	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		var repoErr repositories.RepositoryError
		if errors.As(err, &repoErr) && repoErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %s", ErrCartNotFound, cartID)
		}
		s.logger(ctx, "cart.load_failed", map[string]any{
			"cartID": cartID,
			"error":  err,
		})
		return nil, err
	}

	return s.factory.CreateShipmentsViewModel(ctx, cart)
}
