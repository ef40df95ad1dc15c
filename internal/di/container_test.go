package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hanko-field/cartview/internal/platform/config"
	"github.com/hanko-field/cartview/internal/repositories/memory"
)

const (
	demoFixtures = "../../fixtures/demo.yaml"
	demoMarkets  = "../../fixtures/markets.yaml"
)

func demoConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(context.Background(),
		config.WithoutSystemEnv(),
		config.WithEnvFile(""),
		config.WithEnvMap(map[string]string{
			"CARTVIEW_STORE":                "memory",
			"CARTVIEW_FIXTURES_FILE":        demoFixtures,
			"CARTVIEW_MARKETS_FILE":         demoMarkets,
			"CARTVIEW_SHIPPING_CONCURRENCY": "2",
		}),
	)
	require.NoError(t, err)
	return cfg
}

func newDemoContainer(t *testing.T) *Container {
	t.Helper()
	ctx := context.Background()
	cfg := demoConfig(t)
	reg, err := OpenRegistry(ctx, cfg)
	require.NoError(t, err)
	container, err := NewContainer(ctx, cfg, reg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close(context.Background()) })
	return container
}

func TestNewContainerRequiresRegistry(t *testing.T) {
	_, err := NewContainer(context.Background(), config.Config{}, nil, nil)
	require.Error(t, err)
}

func TestOpenRegistryRejectsUnknownStore(t *testing.T) {
	_, err := OpenRegistry(context.Background(), config.Config{Store: config.StoreConfig{Kind: "redis"}})
	require.ErrorContains(t, err, "unsupported store kind")
}

func TestOpenRegistryWithoutFixtures(t *testing.T) {
	reg, err := OpenRegistry(context.Background(), config.Config{Store: config.StoreConfig{Kind: config.StoreMemory}})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, reg)
}

func TestContainerAssemblesDemoCart(t *testing.T) {
	container := newDemoContainer(t)

	shipments, err := container.Services.Shipments.GetShipments(context.Background(), "demo-us")
	require.NoError(t, err)
	require.Len(t, shipments, 2)

	home := shipments[0]
	assert.Equal(t, "shipment-home", home.ShipmentID)
	assert.Equal(t, "San Francisco", home.Address.City)
	require.Len(t, home.CartItems, 2)
	assert.Equal(t, "Classic hanko seal", home.CartItems[0].DisplayName)
	assert.Equal(t, int64(9000), home.CartItems[0].Total.Amount)
	assert.Equal(t, "Red ink pad", home.CartItems[1].DisplayName)

	require.Len(t, home.ShippingMethods, 2)
	assert.Equal(t, "Ground", home.ShippingMethods[0].DisplayName)
	assert.Equal(t, int64(800), home.ShippingMethods[0].Price.Amount)
	assert.Equal(t, "Express", home.ShippingMethods[1].DisplayName)
	assert.Equal(t, uuid.MustParse("2f9a0c1b-4d3e-4f5a-8b6c-7d8e9f0a1b2c"), home.ShippingMethodID)

	office := shipments[1]
	require.Len(t, office.ShippingMethods, 2)
	assert.Equal(t, office.ShippingMethods[0].ID, office.ShippingMethodID)
	assert.Equal(t, int64(600), office.ShippingMethods[0].Price.Amount)
}

func TestContainerFallsBackToMarketCurrency(t *testing.T) {
	container := newDemoContainer(t)

	shipments, err := container.Services.Shipments.GetShipments(context.Background(), "demo-se")
	require.NoError(t, err)
	require.Len(t, shipments, 1)

	require.Len(t, shipments[0].CartItems, 1)
	assert.Equal(t, "SEK", shipments[0].CartItems[0].PlacedPrice.Currency)
	require.Len(t, shipments[0].ShippingMethods, 1)
	assert.Equal(t, "DHL Express", shipments[0].ShippingMethods[0].DisplayName)
}

func TestContainerHandlerServesShipments(t *testing.T) {
	container := newDemoContainer(t)

	rec := httptest.NewRecorder()
	container.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/carts/demo-empty/shipments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "demo-empty", body["cartId"])
	assert.Empty(t, body["shipments"])

	rec = httptest.NewRecorder()
	container.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/carts/missing/shipments", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewContainerWarnsAboutUnsupportedMarketLanguages(t *testing.T) {
	ctx := context.Background()
	cfg := demoConfig(t)
	reg, err := OpenRegistry(ctx, cfg)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	container, err := NewContainer(ctx, cfg, reg, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close(context.Background()) })

	entries := logs.FilterMessageSnippet("market default language").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "SE", entries[0].ContextMap()["market_id"])
	assert.Equal(t, "sv", entries[0].ContextMap()["language"])
	assert.Equal(t, "en", entries[0].ContextMap()["fallback"])
	assert.Equal(t, "JP", entries[1].ContextMap()["market_id"])

	cfg.Localization.SupportedLanguages = []string{"sv", "ja"}
	core, logs = observer.New(zapcore.WarnLevel)
	covered, err := NewContainer(ctx, cfg, reg, zap.New(core))
	require.NoError(t, err)
	assert.NotNil(t, covered.Handler)
	assert.Zero(t, logs.FilterMessageSnippet("market default language").Len())
}

func TestLoadMarketsDefaultsWithoutFile(t *testing.T) {
	registry, err := LoadMarkets(config.Config{})
	require.NoError(t, err)
	require.Len(t, registry.Markets(), 1)
	assert.Equal(t, "DEFAULT", registry.Markets()[0].ID)

	_, err = LoadMarkets(config.Config{Markets: config.MarketsConfig{File: "missing.yaml"}})
	require.ErrorContains(t, err, "load markets")
}
