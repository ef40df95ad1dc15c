package services

import (
	"iter"

	"github.com/hanko-field/cartview/internal/domain"
)

// Shipments yields every (order form, shipment) pair of the cart in form order, then shipment order.
// The sequence is lazy and may be ranged over any number of times.
func Shipments(cart domain.Cart) iter.Seq2[domain.OrderForm, domain.Shipment] {
	return func(yield func(domain.OrderForm, domain.Shipment) bool) {
		for _, form := range cart.Forms {
			for _, shipment := range form.Shipments {
				if !yield(form, shipment) {
					return
				}
			}
		}
	}
}

// CountShipments returns the number of shipments across all order forms.
func CountShipments(cart domain.Cart) int {
	total := 0
	for _, form := range cart.Forms {
		total += len(form.Shipments)
	}
	return total
}
