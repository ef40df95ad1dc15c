package services

import "errors"

var (
	// ErrShipmentConfiguration indicates the market, currency, or language of a cart could not be determined.
	ErrShipmentConfiguration = errors.New("shipment view: configuration error")
	// ErrShipmentViewUnavailable indicates the service was used without its dependencies.
	ErrShipmentViewUnavailable = errors.New("shipment view: service unavailable")
	// ErrCartItemContentMissing indicates no catalog content exists for a line item code.
	ErrCartItemContentMissing = errors.New("cart item: catalog content missing")
	// ErrCartNotFound indicates the requested cart does not exist.
	ErrCartNotFound = errors.New("shipment view: cart not found")
	// ErrShipmentInvalidInput indicates malformed caller input.
	ErrShipmentInvalidInput = errors.New("shipment view: invalid input")
)
