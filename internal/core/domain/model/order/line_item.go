package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// LineItem is one product, quantity and price entry of an order.
// The unit price and title are captured at checkout; catalog changes made later
// never alter an existing line item.
type LineItem struct {
	productID kernel.UUID
	title     string
	quantity  int
	unitPrice kernel.Money
}

// NewLineItem validates and builds a line item snapshot.
// Quantity must be at least 1 and the unit price must not be negative.
func NewLineItem(productID kernel.UUID, title string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	var err error
	if idErr := productID.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if quantity < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded"))
	}
	if unitPrice.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"unit price",
			fmt.Errorf("%s: %w", unitPrice, kernel.ErrMoneyIsNegative),
		))
	}
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		title:     title,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i LineItem) ProductID() kernel.UUID  { return i.productID }
func (i LineItem) Title() string           { return i.title }
func (i LineItem) Quantity() int           { return i.quantity }
func (i LineItem) UnitPrice() kernel.Money { return i.unitPrice }

// Total returns unit price times quantity.
func (i LineItem) Total() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}
