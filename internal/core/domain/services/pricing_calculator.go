package services

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrMissingPrice is the cause reported for a product that has neither a
	// promotional nor a list price.
	ErrMissingPrice = errors.New("missing price")

	// ErrNegativeAmount is the cause reported for a negative delivery fee or discount.
	ErrNegativeAmount = errors.New("negative amount")
)

// CatalogProduct is the catalog view of a product at the moment of pricing.
// A nil price means the catalog has no such price for the product.
type CatalogProduct struct {
	ID               kernel.UUID
	Title            string
	ListPrice        *kernel.Money
	PromotionalPrice *kernel.Money
}

// UnitPrice resolves the price charged for one unit: the promotional price when it
// is present and positive, the list price otherwise.
func (p CatalogProduct) UnitPrice() (kernel.Money, error) {
	if p.PromotionalPrice != nil && p.PromotionalPrice.IsPositive() {
		return *p.PromotionalPrice, nil
	}
	if p.ListPrice != nil {
		return *p.ListPrice, nil
	}
	return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
		"unit price",
		fmt.Errorf("product %s: %w", p.ID, ErrMissingPrice),
	)
}

// PriceRequest is one requested product and quantity.
type PriceRequest struct {
	Product  CatalogProduct
	Quantity int
}

// Quote is the result of pricing an order.
type Quote struct {
	Items  []order.LineItem
	Totals order.Totals
}

// PricingCalculator derives line items and totals from catalog snapshots.
//
// Rules:
//   - each unit price is resolved with CatalogProduct.UnitPrice and frozen into the line item
//   - subtotal is the sum of unit price times quantity, kept at two decimal places
//   - delivery fee and discount must not be negative
//   - total is subtotal + delivery fee - discount, clamped at zero
//
// Example usage:
//
//	quote, err := services.NewPricingCalculator().Quote(requests, fee, discount)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(quote.Totals.Total) // "28.00"
type PricingCalculator struct{}

func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Quote prices the requests in the order given.
//
// Returns:
//   - Quote: line item snapshots and totals consistent with order.Totals.Validate
//   - error: ValueIsRequiredError for an empty request list, ValueIsInvalidError
//     wrapping ErrMissingPrice or ErrNegativeAmount, or a line item validation error
func (PricingCalculator) Quote(requests []PriceRequest, deliveryFee, discount kernel.Money) (Quote, error) {
	if len(requests) == 0 {
		return Quote{}, order.ErrOrderHasNoItems
	}
	if err := errors.Join(
		requireNonNegative("delivery fee", deliveryFee),
		requireNonNegative("discount", discount),
	); err != nil {
		return Quote{}, err
	}

	items := make([]order.LineItem, 0, len(requests))
	subtotal := kernel.ZeroMoney()
	for _, r := range requests {
		price, err := r.Product.UnitPrice()
		if err != nil {
			return Quote{}, err
		}
		item, err := order.NewLineItem(r.Product.ID, r.Product.Title, r.Quantity, price)
		if err != nil {
			return Quote{}, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Total())
	}

	totals := order.Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
	}
	totals.Total = totals.ExpectedTotal()

	return Quote{Items: items, Totals: totals}, nil
}

func requireNonNegative(field string, amount kernel.Money) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s: %w", amount, ErrNegativeAmount))
	}
	return nil
}
