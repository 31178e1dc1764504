package services

import (
	"crypto/subtle"
	"time"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// VerificationCodeLength is the number of trailing phone digits a courier must present.
const VerificationCodeLength = 4

// VerificationCode derives the proof-of-delivery code for a customer phone: its last
// four digits, formatting stripped. ok is false when the phone has fewer than four
// digits, in which case no code can ever match.
// The code is never stored.
func VerificationCode(phone kernel.Phone) (code string, ok bool) {
	return phone.LastDigits(VerificationCodeLength)
}

// DeliveryHandoff implements the courier side of the lifecycle.
//
// Claim takes a Ready order out for delivery; claiming an order already out for
// delivery is a no-op. Confirm closes the delivery once the courier presents the
// verification code the customer read out to them.
type DeliveryHandoff struct {
	policy AccessPolicy
}

func NewDeliveryHandoff(policy AccessPolicy) DeliveryHandoff {
	return DeliveryHandoff{policy: policy}
}

// Claim moves a Ready order to OutForDelivery on behalf of courier.
//
// Returns:
//   - order.StatusChange and changed=true when the order moved
//   - changed=false when it was already OutForDelivery; nothing is to be persisted
//   - PermissionDeniedError for non-couriers, InvalidStateError for other statuses
func (h DeliveryHandoff) Claim(o *order.Order, courier actor.Actor, at time.Time) (order.StatusChange, bool, error) {
	if err := o.Validate(); err != nil {
		return order.StatusChange{}, false, err
	}
	if err := h.policy.Authorize(courier, OpClaimOrder, ResourceOf(o)); err != nil {
		return order.StatusChange{}, false, err
	}

	return o.Claim(courier.ID(), at)
}

// Confirm delivers o when code matches the verification code derived from phone.
//
// The status is checked before the code: confirming a Ready order fails with
// InvalidStateError even when the code is right. A wrong code, or a phone too short
// to derive one, fails with VerificationFailedError. On success the order is Delivered
// and the audit entry is attributed to the confirming courier.
func (h DeliveryHandoff) Confirm(
	o *order.Order,
	courier actor.Actor,
	phone kernel.Phone,
	code string,
	at time.Time,
) (order.StatusChange, error) {
	if err := o.Validate(); err != nil {
		return order.StatusChange{}, err
	}
	if err := h.policy.Authorize(courier, OpConfirmDelivery, ResourceOf(o)); err != nil {
		return order.StatusChange{}, err
	}
	if err := o.Status().ValidateConfirmDelivery(); err != nil {
		return order.StatusChange{}, err
	}

	expected, ok := VerificationCode(phone)
	if !ok {
		return order.StatusChange{}, errs.NewVerificationFailedError("delivery code", "customer phone has too few digits")
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) != 1 {
		return order.StatusChange{}, errs.NewVerificationFailedError("delivery code", "code does not match")
	}

	return o.ChangeStatus(order.Delivered, courier.ID(), at)
}
