package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanko-field/cartview/internal/cli"
)

const (
	fixturesFile = "../../fixtures/demo.yaml"
	marketsFile  = "../../fixtures/markets.yaml"
)

type shipmentOutput struct {
	ShipmentID string `json:"shipmentId"`
	CartItems  []struct {
		Code        string `json:"code"`
		DisplayName string `json:"displayName"`
	} `json:"cartItems"`
	ShippingMethods []struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"shippingMethods"`
	ShippingMethodID string `json:"shippingMethodId"`
}

func runShipments(t *testing.T, args ...string) []shipmentOutput {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{"shipments", "--fixtures", fixturesFile, "--markets", marketsFile}, args...))
	require.NoError(t, cmd.Execute())

	var out []shipmentOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out), "output should be valid JSON")
	return out
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "cartview dev")
}

func TestMarketsCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"markets", "--markets", marketsFile})
	require.NoError(t, cmd.Execute())

	var out []struct {
		ID              string   `json:"id"`
		DefaultCurrency string   `json:"defaultCurrency"`
		Currencies      []string `json:"currencies"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "US", out[0].ID)
	assert.Equal(t, "SE", out[1].ID)
	assert.Equal(t, []string{"SEK", "EUR"}, out[1].Currencies)
	assert.Equal(t, "JPY", out[2].DefaultCurrency)
}

func TestMarketsCommandRejectsMissingRegistry(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"markets", "--markets", "does-not-exist.yaml"})
	require.ErrorContains(t, cmd.Execute(), "load markets")
}

func TestShipmentsCommand(t *testing.T) {
	out := runShipments(t, "demo-us")
	require.Len(t, out, 2)
	assert.Equal(t, "shipment-home", out[0].ShipmentID)
	require.Len(t, out[0].ShippingMethods, 2)
	assert.Equal(t, "2f9a0c1b-4d3e-4f5a-8b6c-7d8e9f0a1b2c", out[0].ShippingMethodID)
	assert.Equal(t, out[1].ShippingMethods[0].ID, out[1].ShippingMethodID)
}

func TestShipmentsCommandLanguage(t *testing.T) {
	t.Setenv("CARTVIEW_SUPPORTED_LANGUAGES", "sv")

	out := runShipments(t, "demo-se", "--lang", "sv-SE")
	require.Len(t, out, 1)
	require.Len(t, out[0].CartItems, 1)
	assert.Equal(t, "Klassisk hanko-stämpel", out[0].CartItems[0].DisplayName)
	require.Len(t, out[0].ShippingMethods, 1)
	assert.Equal(t, "PostNord", out[0].ShippingMethods[0].DisplayName)
}

func TestShipmentsCommandEmptyCart(t *testing.T) {
	out := runShipments(t, "demo-empty")
	assert.Empty(t, out)
}

func TestShipmentsCommandUnknownCart(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"shipments", "missing", "--fixtures", fixturesFile, "--markets", marketsFile})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart not found")
}

func TestShipmentsCommandRequiresCartID(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"shipments"})
	require.Error(t, cmd.Execute())
}
