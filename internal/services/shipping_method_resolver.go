package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
)

var (
	errResolverCatalogRequired = errors.New("shipping method resolver: catalog is required")
	errResolverRatesRequired   = errors.New("shipping method resolver: rate engine is required")
)

// ShippingRequest carries the shipment and the market context it is priced in.
type ShippingRequest struct {
	Shipment domain.Shipment
	Market   domain.Market
	Currency string
	Language language.Tag
}

// ShippingMethodResolverDeps bundles the collaborators of the resolver.
type ShippingMethodResolverDeps struct {
	Catalog ShippingMethodCatalog
	Rates   RateEngine
	// IncludeInactive lists inactive methods too. The catalog is asked for active methods only by default.
	IncludeInactive bool
	Logger          func(context.Context, string, map[string]any)
}

type shippingMethodResolver struct {
	catalog    ShippingMethodCatalog
	rates      RateEngine
	activeOnly bool
	logger     func(context.Context, string, map[string]any)
}

// NewShippingMethodResolver constructs the resolver.
func NewShippingMethodResolver(deps ShippingMethodResolverDeps) (ShippingRateResolver, error) {
	if deps.Catalog == nil {
		return nil, errResolverCatalogRequired
	}
	if deps.Rates == nil {
		return nil, errResolverRatesRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &shippingMethodResolver{
		catalog:    deps.Catalog,
		rates:      deps.Rates,
		activeOnly: !deps.IncludeInactive,
		logger:     logger,
	}, nil
}

// Resolve returns one rate per catalog method matching the request language and currency, in catalog
// order. An empty result is not an error. Catalog and rate engine failures are returned as-is.
func (r *shippingMethodResolver) Resolve(ctx context.Context, req ShippingRequest) ([]domain.ShippingRate, error) {
	if r == nil || r.catalog == nil || r.rates == nil {
		return nil, ErrShipmentViewUnavailable
	}
	marketID := strings.TrimSpace(req.Market.ID)
	if marketID == "" {
		return nil, fmt.Errorf("%w: market is required", ErrShipmentConfiguration)
	}
	currency := domain.NormalizeCurrency(req.Currency)
	if !domain.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: invalid currency %q for market %s", ErrShipmentConfiguration, req.Currency, marketID)
	}

	candidates, err := r.catalog.GetShippingMethods(ctx, marketID, r.activeOnly)
	if err != nil {
		r.logger(ctx, "shipping.methods_lookup_failed", map[string]any{
			"marketID": marketID,
			"error":    err,
		})
		return nil, err
	}

	rates := make([]domain.ShippingRate, 0, len(candidates))
	for _, method := range candidates {
		if !matchesLanguage(method.LanguageID, req.Language) {
			continue
		}
		if domain.NormalizeCurrency(method.Currency) != currency {
			continue
		}
		rate, err := r.rates.GetRate(ctx, req.Shipment, method, req.Market)
		if err != nil {
			r.logger(ctx, "shipping.rate_failed", map[string]any{
				"marketID":   marketID,
				"methodID":   method.MethodID.String(),
				"shipmentID": req.Shipment.ID,
				"error":      err,
			})
			return nil, err
		}
		rates = append(rates, rate)
	}

	if len(rates) == 0 {
		r.logger(ctx, "shipping.no_methods", map[string]any{
			"marketID":   marketID,
			"currency":   currency,
			"language":   req.Language.String(),
			"candidates": len(candidates),
		})
	}
	return rates, nil
}

// SelectShippingMethod picks the selected method for a shipment: its recorded method when that is still
// among the rates, else the first rate, else uuid.Nil.
func SelectShippingMethod(shipment domain.Shipment, rates []domain.ShippingRate) uuid.UUID {
	if len(rates) == 0 {
		return uuid.Nil
	}
	if shipment.ShippingMethodID != uuid.Nil {
		for _, rate := range rates {
			if rate.MethodID == shipment.ShippingMethodID {
				return rate.MethodID
			}
		}
	}
	return rates[0].MethodID
}

// matchesLanguage compares base languages. Methods without a language, and requests in the
// undetermined language, match everything.
func matchesLanguage(methodLanguage string, want language.Tag) bool {
	methodLanguage = strings.TrimSpace(methodLanguage)
	if methodLanguage == "" || want == language.Und {
		return true
	}
	tag, err := language.Parse(methodLanguage)
	if err != nil {
		return false
	}
	methodBase, _ := tag.Base()
	wantBase, _ := want.Base()
	return methodBase == wantBase
}
