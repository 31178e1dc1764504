package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// The happy path is:
//
//	Pending ──> InPreparation ──> Ready ──> OutForDelivery ──> Delivered
//	   │             │              │              │
//	   └─────────────┴──────────────┴──────────────┴──────────> Cancelled
//
// Delivered and Cancelled are terminal. Between non-terminal statuses no adjacency is
// enforced: staff may move an order to any status, including back to an earlier one.
//
// String returns the wire value shared with the storefront, kitchen display and
// courier app. Those values must never change.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// InPreparation means the kitchen is working on the order.
	InPreparation

	// Ready means the order waits for pickup by a customer or a courier.
	Ready

	// OutForDelivery means a courier has claimed the order and is on the way.
	OutForDelivery

	// Delivered is terminal: the courier confirmed the handoff.
	Delivered

	// Cancelled is terminal: the order will not be fulfilled.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pendente",
		InPreparation:  "Em preparo",
		Ready:          "Pronto",
		OutForDelivery: "Saiu para entrega",
		Delivered:      "Entregue",
		Cancelled:      "Cancelado",
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, InPreparation, Ready, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts a wire value into a Status.
// Matching is exact; anything else is a validation error.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the six known statuses.
func (s Status) Validate() error {
	switch s {
	case Pending, InPreparation, Ready, OutForDelivery, Delivered, Cancelled:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
}

// String returns the wire value of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsDeliverable reports whether couriers may see and claim an order in status s.
func (s Status) IsDeliverable() bool {
	return s == Ready || s == OutForDelivery
}

// ValidateChange checks whether an order in status s may be moved to next.
//
// Returns:
//   - ValueIsInvalidError if next is not a known status
//   - InvalidStateError if s is terminal (or itself invalid)
//   - nil otherwise, for any pair of known statuses
func (s Status) ValidateChange(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return errs.NewInvalidStateErrorWithCause("change status", s.String(), err)
	}
	if s.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause(
			"change status",
			s.String(),
			fmt.Errorf("%s is terminal", s.String()),
		)
	}
	return nil
}

// Claim returns the status after a courier claims an order in status s.
//
// Ready moves to OutForDelivery (changed is true). OutForDelivery stays as is
// (changed is false) so a repeated claim is harmless. Any other status is an
// InvalidStateError.
func (s Status) Claim() (next Status, changed bool, err error) {
	switch s {
	case Ready:
		return OutForDelivery, true, nil
	case OutForDelivery:
		return OutForDelivery, false, nil
	case Unknown, Pending, InPreparation, Delivered, Cancelled:
	}
	return Unknown, false, errs.NewInvalidStateError("claim order", s.String())
}

// ValidateConfirmDelivery checks that a delivery can be confirmed from status s.
// Only OutForDelivery qualifies.
func (s Status) ValidateConfirmDelivery() error {
	if s != OutForDelivery {
		return errs.NewInvalidStateError("confirm delivery", s.String())
	}
	return nil
}
