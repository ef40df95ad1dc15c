package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanko-field/cartview/internal/domain"
)

// TableRateEngine prices a method as its base price plus a per-item price for every unit in the shipment.
type TableRateEngine struct{}

// GetRate implements RateEngine.
func (TableRateEngine) GetRate(ctx context.Context, shipment domain.Shipment, method domain.ShippingMethodInfo, market domain.Market) (domain.ShippingRate, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShippingRate{}, err
	}
	if !domain.ValidCurrency(method.Currency) {
		return domain.ShippingRate{}, fmt.Errorf("rate engine: method %s in market %s has invalid currency %q", method.MethodID, market.ID, method.Currency)
	}
	amount := method.BasePrice + method.PerItemPrice*int64(shipment.ItemCount())
	name := strings.TrimSpace(method.DisplayName)
	if name == "" {
		name = strings.TrimSpace(method.Name)
	}
	return domain.ShippingRate{
		MethodID: method.MethodID,
		Name:     name,
		Price:    domain.NewMoney(amount, method.Currency),
	}, nil
}
