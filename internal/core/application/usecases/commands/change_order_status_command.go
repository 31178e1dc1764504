package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move an order to a new status on behalf of staff.
// The status is kept as received and parsed by the handler once the order is
// known to exist.
type ChangeOrderStatusCommand struct {
	actor   actor.Actor
	orderID kernel.UUID
	status  string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(a actor.Actor, orderID kernel.UUID, status string) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(a.ID().Validate(), orderID.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{
		actor:   a,
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Actor() actor.Actor   { return c.actor }
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Status() string       { return c.status }
