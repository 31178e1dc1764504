package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Totals groups the monetary amounts of an order.
type Totals struct {
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Discount    kernel.Money
	Total       kernel.Money
}

// ExpectedTotal returns max(0, subtotal + delivery fee - discount).
func (t Totals) ExpectedTotal() kernel.Money {
	return t.Subtotal.Add(t.DeliveryFee).Sub(t.Discount).ClampAtZero()
}

// Validate checks the totals against the line items they were computed from:
// no amount is negative, the subtotal is the sum of the line totals and the
// total equals ExpectedTotal.
func (t Totals) Validate(items []LineItem) error {
	var err error
	for name, amount := range map[string]kernel.Money{
		"subtotal":     t.Subtotal,
		"delivery fee": t.DeliveryFee,
		"discount":     t.Discount,
		"total":        t.Total,
	} {
		if amount.IsNegative() {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				name,
				fmt.Errorf("%s: %w", amount, kernel.ErrMoneyIsNegative),
			))
		}
	}
	if err != nil {
		return err
	}

	sum := kernel.ZeroMoney()
	for _, item := range items {
		sum = sum.Add(item.Total())
	}
	if !sum.Equal(t.Subtotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("%s does not match line items sum %s", t.Subtotal, sum),
		)
	}
	if expected := t.ExpectedTotal(); !expected.Equal(t.Total) {
		return errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%s does not match expected %s", t.Total, expected),
		)
	}
	return nil
}
