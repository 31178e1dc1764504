package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand closes a delivery with the code the customer gave the courier.
// An empty code is accepted here and simply fails verification.
type ConfirmDeliveryCommand struct {
	courier actor.Actor
	orderID kernel.UUID
	code    string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(courier actor.Actor, orderID kernel.UUID, code string) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(courier.ID().Validate(), orderID.Validate()); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{
		courier: courier,
		orderID: orderID,
		code:    strings.TrimSpace(code),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Courier() actor.Actor { return c.courier }
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
func (c ConfirmDeliveryCommand) Code() string         { return c.code }
