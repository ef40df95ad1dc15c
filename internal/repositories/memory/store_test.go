package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	domain "github.com/hanko-field/cartview/internal/domain"
	"github.com/hanko-field/cartview/internal/repositories"
)

const fixturesYAML = `
carts:
  - id: cart-1
    marketId: US
    currency: usd
    forms:
      - id: form-1
        shipments:
          - id: shipment-1
            shippingMethodId: 9b2f8c1e-3a4d-4e5f-8a6b-7c8d9e0f1a2b
            address:
              id: addr-1
              city: Seattle
              countryCode: US
            lineItems:
              - code: shoe
                quantity: 2
                placedPrice: 4999
shippingMethods:
  - id: 9b2f8c1e-3a4d-4e5f-8a6b-7c8d9e0f1a2b
    name: express
    language: en
    currency: USD
    basePrice: 1500
    ordering: 2
    markets: [US]
  - id: 0c6a7d9e-1b2c-4d3e-9f40-5a6b7c8d9e0f
    name: ground
    language: en
    currency: USD
    basePrice: 500
    ordering: 1
    markets: [US, CA]
  - id: 1d7b8e0f-2c3d-4e4f-8a51-6b7c8d9e0f1a
    name: retired
    language: en
    currency: USD
    ordering: 0
    active: false
    markets: [US]
content:
  - code: shoe
    name: Shoe
    displayName: Trail shoe
    language: en
  - code: shoe
    displayName: Löparsko
    language: sv
`

func TestParseFixturesCart(t *testing.T) {
	store, err := ParseFixtures([]byte(fixturesYAML))
	require.NoError(t, err)

	cart, err := store.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, "USD", cart.Currency)
	require.Len(t, cart.Forms, 1)
	require.Len(t, cart.Forms[0].Shipments, 1)

	shipment := cart.Forms[0].Shipments[0]
	assert.Equal(t, uuid.MustParse("9b2f8c1e-3a4d-4e5f-8a6b-7c8d9e0f1a2b"), shipment.ShippingMethodID)
	require.NotNil(t, shipment.ShippingAddress)
	assert.Equal(t, "Seattle", shipment.ShippingAddress.City)
	assert.Equal(t, int64(4999), shipment.LineItems[0].PlacedPrice)
}

func TestGetCartReturnsCopies(t *testing.T) {
	store, err := ParseFixtures([]byte(fixturesYAML))
	require.NoError(t, err)

	cart, err := store.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)
	cart.Forms[0].Shipments[0].LineItems[0].Quantity = 99
	cart.Forms[0].Shipments[0].ShippingAddress.City = "Elsewhere"

	again, err := store.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Forms[0].Shipments[0].LineItems[0].Quantity)
	assert.Equal(t, "Seattle", again.Forms[0].Shipments[0].ShippingAddress.City)
}

func TestGetCartNotFound(t *testing.T) {
	_, err := NewStore().GetCart(context.Background(), "missing")
	require.Error(t, err)
	var repoErr repositories.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.True(t, repoErr.IsNotFound())
}

func TestGetShippingMethodsFiltersAndOrders(t *testing.T) {
	store, err := ParseFixtures([]byte(fixturesYAML))
	require.NoError(t, err)

	active, err := store.GetShippingMethods(context.Background(), "US", true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "ground", active[0].Name)
	assert.Equal(t, "express", active[1].Name)

	all, err := store.GetShippingMethods(context.Background(), "US", false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "retired", all[0].Name)

	canada, err := store.GetShippingMethods(context.Background(), "CA", true)
	require.NoError(t, err)
	require.Len(t, canada, 1)

	none, err := store.GetShippingMethods(context.Background(), "SE", true)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadContentItemsLocalizes(t *testing.T) {
	store, err := ParseFixtures([]byte(fixturesYAML))
	require.NoError(t, err)

	sv, err := store.LoadContentItems(context.Background(), []string{"shoe", "unknown"}, language.MustParse("sv-SE"))
	require.NoError(t, err)
	require.Len(t, sv, 1)
	assert.Equal(t, "Löparsko", sv[0].DisplayName)

	de, err := store.LoadContentItems(context.Background(), []string{"shoe"}, language.German)
	require.NoError(t, err)
	require.Len(t, de, 1)
	assert.Equal(t, "Trail shoe", de[0].DisplayName)
}

func TestParseFixturesRejectsInvalidMethodID(t *testing.T) {
	_, err := ParseFixtures([]byte("shippingMethods:\n  - id: nope\n    name: broken\n"))
	require.Error(t, err)
}

func TestLoadFixturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixturesYAML), 0o600))

	store, err := LoadFixtures(path)
	require.NoError(t, err)
	_, err = store.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)
}

func TestPutCartRequiresID(t *testing.T) {
	require.Error(t, NewStore().PutCart(domain.Cart{}))
}
