package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/handlers"
	"github.com/hanko-field/cartview/internal/platform/config"
	pfirestore "github.com/hanko-field/cartview/internal/platform/firestore"
	"github.com/hanko-field/cartview/internal/platform/markets"
	"github.com/hanko-field/cartview/internal/platform/observability"
	"github.com/hanko-field/cartview/internal/repositories"
	firestoreRepo "github.com/hanko-field/cartview/internal/repositories/firestore"
	"github.com/hanko-field/cartview/internal/repositories/memory"
	"github.com/hanko-field/cartview/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon.
type Services struct {
	Languages *services.RequestLanguageResolver
	Factory   services.ShipmentViewModelFactory
	Shipments services.ShipmentViewService
}

// Container wires repositories, services, and the HTTP surface for runtime use.
type Container struct {
	Config       config.Config
	Repositories repositories.Registry
	Markets      *markets.Registry
	Services     Services
	Handler      http.Handler
}

// OpenRegistry builds the repository registry selected by cfg.Store.
func OpenRegistry(ctx context.Context, cfg config.Config) (repositories.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Kind)) {
	case "", config.StoreMemory:
		if path := strings.TrimSpace(cfg.Store.FixturesFile); path != "" {
			store, err := memory.LoadFixtures(path)
			if err != nil {
				return nil, fmt.Errorf("load fixtures: %w", err)
			}
			return store, nil
		}
		return memory.NewStore(), nil
	case config.StoreFirestore:
		provider := pfirestore.NewProvider(cfg.Firestore)
		reg, err := firestoreRepo.NewRegistry(provider, cfg.Firestore)
		if err != nil {
			_ = provider.Close(ctx)
			return nil, err
		}
		return reg, nil
	default:
		return nil, fmt.Errorf("unsupported store kind %q", cfg.Store.Kind)
	}
}

// NewContainer constructs the runtime dependencies on top of the supplied registry.
func NewContainer(ctx context.Context, cfg config.Config, reg repositories.Registry, logger *zap.Logger) (*Container, error) {
	if reg == nil {
		return nil, errors.New("repositories registry is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	marketRegistry, err := LoadMarkets(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := buildServices(cfg, reg, marketRegistry, logger)
	if err != nil {
		return nil, err
	}
	warnUncoveredMarketLanguages(logger, marketRegistry, svc.Languages)

	shipmentHandlers := handlers.NewShipmentHandlers(svc.Shipments, handlers.WithFormatLanguage(cfg.Localization.DefaultTag()))
	router := handlers.NewRouter(
		handlers.WithTimeout(cfg.Server.WriteTimeout),
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(cfg.Observability.ProjectID),
			observability.RecoveryMiddleware(logger),
			handlers.LanguageMiddleware(svc.Languages),
			observability.RequestLoggerMiddleware(),
		),
		handlers.WithCartRoutes(shipmentHandlers.Routes),
	)

	return &Container{
		Config:       cfg,
		Repositories: reg,
		Markets:      marketRegistry,
		Services:     svc,
		Handler:      router,
	}, nil
}

// LoadMarkets reads the registry named by cfg.Markets.File, or returns the built-in default market.
func LoadMarkets(cfg config.Config) (*markets.Registry, error) {
	path := strings.TrimSpace(cfg.Markets.File)
	if path == "" {
		return markets.Default(), nil
	}
	registry, err := markets.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load markets: %w", err)
	}
	return registry, nil
}

// warnUncoveredMarketLanguages logs markets whose default language no supported language serves.
func warnUncoveredMarketLanguages(logger *zap.Logger, registry *markets.Registry, languages *services.RequestLanguageResolver) {
	supported := languages.Supported()
	for _, market := range registry.Markets() {
		if strings.TrimSpace(market.DefaultLanguage) == "" {
			continue
		}
		tag, err := language.Parse(market.DefaultLanguage)
		if err != nil {
			continue
		}
		if !coversLanguage(supported, tag) {
			logger.Warn("market default language is not supported; content falls back",
				zap.String("market_id", market.ID),
				zap.String("language", tag.String()),
				zap.String("fallback", languages.Match(tag).String()),
			)
		}
	}
}

func coversLanguage(supported []language.Tag, tag language.Tag) bool {
	base, _ := tag.Base()
	for _, candidate := range supported {
		if b, _ := candidate.Base(); b == base {
			return true
		}
	}
	return false
}

// Close releases repository clients.
func (c *Container) Close(ctx context.Context) error {
	if c == nil || c.Repositories == nil {
		return nil
	}
	return c.Repositories.Close(ctx)
}

func buildServices(cfg config.Config, reg repositories.Registry, marketRegistry *markets.Registry, logger *zap.Logger) (Services, error) {
	events := observability.EventLogger(logger.Named("shipments"))
	languages := services.NewLanguageResolver(cfg.Localization.SupportedTags()...)

	resolver, err := services.NewShippingMethodResolver(services.ShippingMethodResolverDeps{
		Catalog:         reg.ShippingMethods(),
		Rates:           services.TableRateEngine{},
		IncludeInactive: !cfg.Shipping.ActiveOnly,
		Logger:          events,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build shipping method resolver: %w", err)
	}

	enricher, err := services.NewLineItemEnricher(services.LineItemEnricherDeps{
		Content: reg.Content(),
		Items:   services.NewCartItemFactory(),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build line item enricher: %w", err)
	}

	metrics, err := observability.NewShipmentMetrics()
	if err != nil {
		return Services{}, fmt.Errorf("build shipment metrics: %w", err)
	}

	factory, err := services.NewShipmentViewModelFactory(services.ShipmentViewModelFactoryDeps{
		Addresses:   services.AddressBook{Language: cfg.Localization.DefaultTag()},
		LineItems:   enricher,
		Resolver:    resolver,
		Markets:     marketRegistry,
		Languages:   languages,
		Observer:    metrics,
		Concurrency: cfg.Shipping.Concurrency,
		Clock:       time.Now,
		Logger:      events,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build shipment view model factory: %w", err)
	}

	shipments, err := services.NewShipmentViewService(services.ShipmentViewServiceDeps{
		Carts:   reg.Carts(),
		Factory: factory,
		Logger:  events,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build shipment view service: %w", err)
	}

	return Services{
		Languages: languages,
		Factory:   factory,
		Shipments: shipments,
	}, nil
}
