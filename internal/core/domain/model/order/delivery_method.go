package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// DeliveryMethod tells whether the customer receives the order at home or picks it up.
// It is descriptive only and has no effect on status rules.
type DeliveryMethod string

const (
	Delivery DeliveryMethod = "delivery"
	Pickup   DeliveryMethod = "pickup"
)

// ParseDeliveryMethod converts the wire value. An empty string defaults to Delivery.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case "":
		return Delivery, nil
	case Delivery, Pickup:
		return DeliveryMethod(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("delivery method", fmt.Errorf("%q is not delivery or pickup", s))
}

func (m DeliveryMethod) String() string {
	return string(m)
}
