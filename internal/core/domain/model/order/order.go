package order

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("line items")
)

// Details carries the descriptive fields of an order. They are shown to staff and
// couriers but no business rule depends on them.
type Details struct {
	PaymentMethod  string
	DeliveryMethod DeliveryMethod
	Notes          string
}

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - id and customer are set at creation and never change
//   - the address and every line item are snapshots taken at checkout
//   - totals are consistent with the line items and the total is never negative
//   - status is always one of the known statuses; terminal statuses never change
//   - updatedAt moves forward on every mutation
//
// After creation, status is the only mutable field and it changes only through
// ChangeStatus and Claim. Orders are never deleted.
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	deliveryAddress Address
	items           []LineItem
	totals          Totals
	details         Details
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	// version is the persisted revision this instance was loaded at; repositories
	// use it as the compare-and-swap token when writing the order back.
	version int

	isConstructed bool
}

// NewOrder creates a Pending order placed by customerID at now.
//
// The address and items are stored as given; callers pass snapshots taken from the
// customer directory and the catalog. The totals must have been computed from the
// same items (see services.PricingCalculator).
//
// Example:
//
//	quote, err := pricing.Quote(requests, fee, discount)
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, address, quote.Items, quote.Totals, details, time.Now())
func NewOrder(
	id, customerID kernel.UUID,
	address Address,
	items []LineItem,
	totals Totals,
	details Details,
	now time.Time,
) (*Order, error) {
	return RestoreOrder(id, customerID, address, items, totals, details, Pending, now, now, 0)
}

// RestoreOrder rebuilds an order from storage, validating every invariant again.
func RestoreOrder(
	id, customerID kernel.UUID,
	address Address,
	items []LineItem,
	totals Totals,
	details Details,
	status Status,
	createdAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		id:              id,
		customerID:      customerID,
		deliveryAddress: address,
		items:           append([]LineItem(nil), items...),
		totals:          totals,
		status:          status,
		createdAt:       createdAt.UTC(),
		updatedAt:       updatedAt.UTC(),
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		address.Validate(),
		o.setItems(items),
		totals.Validate(items),
		o.setDetails(details),
		status.Validate(),
		o.validateTimestamps(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) CustomerID() kernel.UUID  { return o.customerID }
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }
func (o *Order) Totals() Totals           { return o.totals }
func (o *Order) Details() Details         { return o.details }
func (o *Order) Status() Status           { return o.status }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }
func (o *Order) Version() int             { return o.version }

// Items returns a copy of the line items in checkout order.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Number returns the short order number shown to staff and couriers:
// "#" followed by the last six characters of the id, upper-cased.
func (o *Order) Number() string {
	id := o.id.String()
	return "#" + strings.ToUpper(id[len(id)-6:])
}

// IsOwnedBy reports whether customerID placed the order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// ChangeStatus moves the order to next at time at and returns the audit entry
// attributed to actorID. See Status.ValidateChange for the accepted transitions.
func (o *Order) ChangeStatus(next Status, actorID kernel.UUID, at time.Time) (StatusChange, error) {
	if err := o.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := o.status.ValidateChange(next); err != nil {
		return StatusChange{}, err
	}

	change, err := NewStatusChange(o.id, actorID, next, at)
	if err != nil {
		return StatusChange{}, err
	}

	o.status = next
	o.touch(at)
	return change, nil
}

// Claim hands a Ready order to the courier actorID, moving it to OutForDelivery.
//
// Returns:
//   - the audit entry and changed=true when the order was Ready
//   - changed=false and no entry when it was already OutForDelivery
//   - InvalidStateError for any other status
func (o *Order) Claim(actorID kernel.UUID, at time.Time) (change StatusChange, changed bool, err error) {
	if err = o.Validate(); err != nil {
		return StatusChange{}, false, err
	}

	next, changed, err := o.status.Claim()
	if err != nil || !changed {
		return StatusChange{}, false, err
	}

	change, err = o.ChangeStatus(next, actorID, at)
	if err != nil {
		return StatusChange{}, false, err
	}
	return change, true, nil
}

func (o *Order) touch(at time.Time) {
	at = at.UTC()
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	return nil
}

func (o *Order) setDetails(details Details) error {
	method, err := ParseDeliveryMethod(string(details.DeliveryMethod))
	if err != nil {
		return err
	}
	details.DeliveryMethod = method
	o.details = details
	return nil
}

func (o *Order) validateTimestamps() error {
	if o.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	if o.updatedAt.Before(o.createdAt) {
		return errs.NewValueIsInvalidError("updated at is before created at")
	}
	return nil
}
