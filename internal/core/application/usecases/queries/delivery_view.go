package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// DeliveryItem is one line of a courier view. UnitPrice is only filled in the detail view.
type DeliveryItem struct {
	Title     string
	Quantity  int
	UnitPrice *kernel.Money
}

// DeliveryView is what a courier sees of an order. It carries the customer's name
// but never the phone: the phone is the secret behind the delivery code.
type DeliveryView struct {
	OrderID       kernel.UUID
	Number        string
	CustomerName  string
	Address       order.Address
	Items         []DeliveryItem
	Total         kernel.Money
	Notes         string
	Status        order.Status
	PaymentMethod string
	CreatedAt     time.Time
}

func newDeliveryView(o *order.Order, customer ports.Customer, withPrices bool) DeliveryView {
	items := make([]DeliveryItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		line := DeliveryItem{Title: item.Title(), Quantity: item.Quantity()}
		if withPrices {
			price := item.UnitPrice()
			line.UnitPrice = &price
		}
		items = append(items, line)
	}

	return DeliveryView{
		OrderID:       o.ID(),
		Number:        o.Number(),
		CustomerName:  customer.Name,
		Address:       o.DeliveryAddress(),
		Items:         items,
		Total:         o.Totals().Total,
		Notes:         o.Details().Notes,
		Status:        o.Status(),
		PaymentMethod: o.Details().PaymentMethod,
		CreatedAt:     o.CreatedAt(),
	}
}

func isUpstream(err error) bool {
	return errors.Is(err, errs.ErrUpstreamUnavailable)
}
