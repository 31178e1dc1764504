package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand asks to take a Ready order out for delivery.
type ClaimOrderCommand struct {
	courier actor.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(courier actor.Actor, orderID kernel.UUID) (ClaimOrderCommand, error) {
	if err := errors.Join(courier.ID().Validate(), orderID.Validate()); err != nil {
		return ClaimOrderCommand{}, err
	}
	return ClaimOrderCommand{
		courier: courier,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) Courier() actor.Actor { return c.courier }
func (c ClaimOrderCommand) OrderID() kernel.UUID { return c.orderID }
