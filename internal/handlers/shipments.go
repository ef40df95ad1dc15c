package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
	"github.com/hanko-field/cartview/internal/platform/httpx"
	"github.com/hanko-field/cartview/internal/platform/requestctx"
	"github.com/hanko-field/cartview/internal/services"
)

// ShipmentHandlers exposes shipment view models over HTTP.
type ShipmentHandlers struct {
	service        services.ShipmentViewService
	formatLanguage language.Tag
}

// ShipmentHandlersOption customises ShipmentHandlers.
type ShipmentHandlersOption func(*ShipmentHandlers)

// WithFormatLanguage sets the language used to format prices when the request carries none.
func WithFormatLanguage(tag language.Tag) ShipmentHandlersOption {
	return func(h *ShipmentHandlers) {
		if tag != language.Und {
			h.formatLanguage = tag
		}
	}
}

// NewShipmentHandlers constructs the handlers.
func NewShipmentHandlers(service services.ShipmentViewService, opts ...ShipmentHandlersOption) *ShipmentHandlers {
	h := &ShipmentHandlers{service: service, formatLanguage: language.English}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the shipment endpoints beneath /carts.
func (h *ShipmentHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/{cartID}/shipments", h.listShipments)
}

type shipmentsResponse struct {
	CartID    string             `json:"cartId"`
	Shipments []shipmentResponse `json:"shipments"`
}

type shipmentResponse struct {
	ShipmentID       string                   `json:"shipmentId"`
	Address          domain.AddressModel      `json:"address"`
	CartItems        []cartItemResponse       `json:"cartItems"`
	ShippingMethods  []shippingMethodResponse `json:"shippingMethods"`
	ShippingMethodID uuid.UUID                `json:"shippingMethodId"`
}

type cartItemResponse struct {
	domain.CartItemViewModel
	PlacedPriceFormatted string `json:"placedPriceFormatted"`
	TotalFormatted       string `json:"totalFormatted"`
}

type shippingMethodResponse struct {
	ID             uuid.UUID    `json:"id"`
	DisplayName    string       `json:"displayName"`
	Price          domain.Money `json:"price"`
	PriceFormatted string       `json:"priceFormatted"`
	Selected       bool         `json:"selected"`
}

func (h *ShipmentHandlers) listShipments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h == nil || h.service == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "shipment service is not configured", http.StatusServiceUnavailable))
		return
	}

	cartID := strings.TrimSpace(chi.URLParam(r, "cartID"))
	shipments, err := h.service.GetShipments(ctx, cartID)
	if err != nil {
		writeShipmentError(w, r, cartID, err)
		return
	}

	lang := h.formatLanguage
	if pref, ok := requestctx.Language(ctx); ok && pref.Current != language.Und {
		lang = pref.Current
	}
	httpx.WriteJSON(w, http.StatusOK, shipmentsResponse{
		CartID:    cartID,
		Shipments: toShipmentResponses(shipments, lang),
	})
}

func toShipmentResponses(shipments []domain.ShipmentViewModel, lang language.Tag) []shipmentResponse {
	out := make([]shipmentResponse, 0, len(shipments))
	for _, vm := range shipments {
		items := make([]cartItemResponse, 0, len(vm.CartItems))
		for _, item := range vm.CartItems {
			items = append(items, cartItemResponse{
				CartItemViewModel:    item,
				PlacedPriceFormatted: item.PlacedPrice.Format(lang),
				TotalFormatted:       item.Total.Format(lang),
			})
		}
		methods := make([]shippingMethodResponse, 0, len(vm.ShippingMethods))
		for _, method := range vm.ShippingMethods {
			methods = append(methods, shippingMethodResponse{
				ID:             method.ID,
				DisplayName:    method.DisplayName,
				Price:          method.Price,
				PriceFormatted: method.Price.Format(lang),
				Selected:       method.ID == vm.ShippingMethodID,
			})
		}
		out = append(out, shipmentResponse{
			ShipmentID:       vm.ShipmentID,
			Address:          vm.Address,
			CartItems:        items,
			ShippingMethods:  methods,
			ShippingMethodID: vm.ShippingMethodID,
		})
	}
	return out
}

func writeShipmentError(w http.ResponseWriter, r *http.Request, cartID string, err error) {
	ctx := r.Context()
	details := map[string]any{"cart_id": cartID}
	switch {
	case errors.Is(err, services.ErrShipmentInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest).WithDetails(details))
	case errors.Is(err, services.ErrCartNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("cart_not_found", "cart not found", http.StatusNotFound).WithDetails(details))
	case errors.Is(err, services.ErrShipmentConfiguration):
		requestctx.Logger(ctx).Error("shipment configuration error", zap.Error(err), zap.String("cart_id", cartID))
		httpx.WriteError(ctx, w, httpx.NewError("shipment_configuration", "cart market or currency is not configured", http.StatusInternalServerError).WithDetails(details))
	case errors.Is(err, services.ErrCartItemContentMissing):
		httpx.WriteError(ctx, w, httpx.NewError("cart_item_content_missing", err.Error(), http.StatusUnprocessableEntity).WithDetails(details))
	case errors.Is(err, services.ErrShipmentViewUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "shipment service is not configured", http.StatusServiceUnavailable))
	default:
		requestctx.Logger(ctx).Error("shipment assembly failed", zap.Error(err), zap.String("cart_id", cartID))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "failed to assemble shipments", http.StatusInternalServerError).WithDetails(details))
	}
}
