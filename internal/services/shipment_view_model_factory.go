package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/domain"
)

var (
	errFactoryAddressesRequired = errors.New("shipment view model factory: address converter is required")
	errFactoryLineItemsRequired = errors.New("shipment view model factory: line item enricher is required")
	errFactoryResolverRequired  = errors.New("shipment view model factory: shipping rate resolver is required")
	errFactoryMarketsRequired   = errors.New("shipment view model factory: market resolver is required")
	errFactoryLanguagesRequired = errors.New("shipment view model factory: language resolver is required")
)

var tracer = otel.Tracer("github.com/hanko-field/cartview/internal/services")

// ShipmentViewModelFactoryDeps bundles the collaborators of the factory.
type ShipmentViewModelFactoryDeps struct {
	Addresses AddressConverter
	LineItems LineItemEnricher
	Resolver  ShippingRateResolver
	Markets   MarketResolver
	Languages LanguageResolver
	Observer  ShipmentObserver
	// Concurrency bounds how many shipments are assembled at once. Values below 2 assemble sequentially.
	Concurrency int
	Clock       func() time.Time
	Logger      func(context.Context, string, map[string]any)
}

type shipmentViewModelFactory struct {
	addresses   AddressConverter
	lineItems   LineItemEnricher
	resolver    ShippingRateResolver
	markets     MarketResolver
	languages   LanguageResolver
	observer    ShipmentObserver
	concurrency int
	clock       func() time.Time
	logger      func(context.Context, string, map[string]any)
}

// assemblyContext is the per-cart context shared by every shipment of one call.
type assemblyContext struct {
	cart      domain.Cart
	market    domain.Market
	currency  string
	preferred language.Tag
	current   language.Tag
}

// NewShipmentViewModelFactory constructs the factory.
func NewShipmentViewModelFactory(deps ShipmentViewModelFactoryDeps) (ShipmentViewModelFactory, error) {
	switch {
	case deps.Addresses == nil:
		return nil, errFactoryAddressesRequired
	case deps.LineItems == nil:
		return nil, errFactoryLineItemsRequired
	case deps.Resolver == nil:
		return nil, errFactoryResolverRequired
	case deps.Markets == nil:
		return nil, errFactoryMarketsRequired
	case deps.Languages == nil:
		return nil, errFactoryLanguagesRequired
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &shipmentViewModelFactory{
		addresses:   deps.Addresses,
		lineItems:   deps.LineItems,
		resolver:    deps.Resolver,
		markets:     deps.Markets,
		languages:   deps.Languages,
		observer:    deps.Observer,
		concurrency: concurrency,
		clock:       clock,
		logger:      logger,
	}, nil
}

// CreateShipmentsViewModel returns one view model per shipment in enumeration order. The first
// collaborator failure aborts the call and is returned unchanged.
func (f *shipmentViewModelFactory) CreateShipmentsViewModel(ctx context.Context, cart domain.Cart) (result []domain.ShipmentViewModel, err error) {
	if f == nil || f.resolver == nil {
		return nil, ErrShipmentViewUnavailable
	}

	ctx, span := tracer.Start(ctx, "ShipmentViewModelFactory.CreateShipmentsViewModel", trace.WithAttributes(
		attribute.String("cart.id", cart.ID),
		attribute.String("cart.market_id", cart.MarketID),
	))
	start := f.clock()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "shipment assembly failed")
			f.logger(ctx, "shipments.assembly_failed", map[string]any{
				"cartID": cart.ID,
				"error":  err,
			})
		}
		if f.observer != nil {
			f.observer.ObserveAssembly(ctx, cart.MarketID, f.clock().Sub(start), err)
		}
		span.End()
	}()

	total := CountShipments(cart)
	span.SetAttributes(attribute.Int("cart.shipments", total))
	if total == 0 {
		return []domain.ShipmentViewModel{}, nil
	}

	env, err := f.resolveContext(ctx, cart)
	if err != nil {
		return nil, err
	}

	if f.concurrency > 1 && total > 1 {
		result, err = f.assembleConcurrently(ctx, env, total)
	} else {
		result, err = f.assembleSequentially(ctx, env, total)
	}
	if err != nil {
		return nil, err
	}

	f.logger(ctx, "shipments.assembled", map[string]any{
		"cartID":    cart.ID,
		"marketID":  env.market.ID,
		"currency":  env.currency,
		"shipments": len(result),
	})
	return result, nil
}

func (f *shipmentViewModelFactory) resolveContext(ctx context.Context, cart domain.Cart) (assemblyContext, error) {
	marketID := strings.TrimSpace(cart.MarketID)
	if marketID == "" {
		return assemblyContext{}, fmt.Errorf("%w: cart %s has no market", ErrShipmentConfiguration, cart.ID)
	}
	market, err := f.markets.Market(ctx, marketID)
	if err != nil {
		return assemblyContext{}, fmt.Errorf("%w: market %q: %w", ErrShipmentConfiguration, marketID, err)
	}

	currency := domain.NormalizeCurrency(cart.Currency)
	if currency == "" {
		currency = domain.NormalizeCurrency(market.DefaultCurrency)
	}
	if currency == "" {
		return assemblyContext{}, fmt.Errorf("%w: no currency for cart %s in market %s", ErrShipmentConfiguration, cart.ID, market.ID)
	}
	if !market.SupportsCurrency(currency) {
		return assemblyContext{}, fmt.Errorf("%w: currency %s not offered in market %s", ErrShipmentConfiguration, currency, market.ID)
	}
	cart.Currency = currency

	return assemblyContext{
		cart:      cart,
		market:    market,
		currency:  currency,
		preferred: f.languages.PreferredCulture(ctx),
		current:   f.languages.CurrentLanguage(ctx),
	}, nil
}

func (f *shipmentViewModelFactory) assembleSequentially(ctx context.Context, env assemblyContext, total int) ([]domain.ShipmentViewModel, error) {
	result := make([]domain.ShipmentViewModel, 0, total)
	for _, shipment := range Shipments(env.cart) {
		vm, err := f.assembleShipment(ctx, env, shipment)
		if err != nil {
			return nil, err
		}
		result = append(result, vm)
	}
	return result, nil
}

func (f *shipmentViewModelFactory) assembleConcurrently(ctx context.Context, env assemblyContext, total int) ([]domain.ShipmentViewModel, error) {
	result := make([]domain.ShipmentViewModel, total)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)

	index := 0
	for _, shipment := range Shipments(env.cart) {
		position := index
		index++
		group.Go(func() error {
			vm, err := f.assembleShipment(groupCtx, env, shipment)
			if err != nil {
				return err
			}
			result[position] = vm
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *shipmentViewModelFactory) assembleShipment(ctx context.Context, env assemblyContext, shipment domain.Shipment) (domain.ShipmentViewModel, error) {
	ctx, span := tracer.Start(ctx, "ShipmentViewModelFactory.assembleShipment", trace.WithAttributes(
		attribute.String("shipment.id", shipment.ID),
		attribute.Int("shipment.line_items", len(shipment.LineItems)),
	))
	defer span.End()

	items, err := f.lineItems.EnrichLineItems(ctx, env.cart, shipment, env.preferred)
	if err != nil {
		span.RecordError(err)
		return domain.ShipmentViewModel{}, err
	}
	if items == nil {
		items = []domain.CartItemViewModel{}
	}

	rates, err := f.resolver.Resolve(ctx, ShippingRequest{
		Shipment: shipment,
		Market:   env.market,
		Currency: env.currency,
		Language: env.current,
	})
	if err != nil {
		span.RecordError(err)
		return domain.ShipmentViewModel{}, err
	}

	methods := make([]domain.ShippingMethodViewModel, 0, len(rates))
	for _, rate := range rates {
		methods = append(methods, domain.ShippingMethodViewModel{
			ID:          rate.MethodID,
			DisplayName: rate.Name,
			Price:       rate.Price,
		})
	}
	selected := SelectShippingMethod(shipment, rates)
	span.SetAttributes(
		attribute.Int("shipment.shipping_methods", len(methods)),
		attribute.String("shipment.shipping_method_id", selected.String()),
	)
	if f.observer != nil {
		f.observer.ObserveShipment(ctx, env.market.ID, len(methods))
	}

	return domain.ShipmentViewModel{
		ShipmentID:       shipment.ID,
		Address:          f.addresses.ToAddressModel(shipment.ShippingAddress, env.current),
		CartItems:        items,
		ShippingMethods:  methods,
		ShippingMethodID: selected,
	}, nil
}
