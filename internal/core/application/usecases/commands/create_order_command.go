package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemRequest is one requested product and quantity.
type OrderItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand asks to place an order for a customer at checkout.
// The order id is generated by the constructor so callers can refer to the
// order before the handler returns.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, customer.ID(), 0, items, fee, discount, details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        actor.Actor
	customerID   kernel.UUID
	addressIndex int
	items        []OrderItemRequest
	deliveryFee  kernel.Money
	discount     kernel.Money
	details      order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Prices, the address and
// the permission of the actor are checked by the handler.
func NewCreateOrderCommand(
	a actor.Actor,
	customerID kernel.UUID,
	addressIndex int,
	items []OrderItemRequest,
	deliveryFee, discount kernel.Money,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderID:     kernel.NewUUID(),
		actor:       a,
		deliveryFee: deliveryFee,
		discount:    discount,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.ID().Validate(),
		cmd.setCustomerID(customerID),
		cmd.setAddressIndex(addressIndex),
		cmd.setItems(items),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) Actor() actor.Actor        { return c.actor }
func (c CreateOrderCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c CreateOrderCommand) AddressIndex() int         { return c.addressIndex }
func (c CreateOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }
func (c CreateOrderCommand) Discount() kernel.Money    { return c.discount }
func (c CreateOrderCommand) Details() order.Details    { return c.details }

// Items returns a copy of the requested items.
func (c CreateOrderCommand) Items() []OrderItemRequest {
	return append([]OrderItemRequest(nil), c.items...)
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsOutOfRangeError("address index", index, 0, "unbounded")
	}
	c.addressIndex = index
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return order.ErrOrderHasNoItems
	}
	var err error
	for _, item := range items {
		if idErr := item.ProductID.Validate(); idErr != nil {
			err = errors.Join(err, idErr)
		}
		if item.Quantity < 1 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded"))
		}
	}
	if err != nil {
		return err
	}
	c.items = append([]OrderItemRequest(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	method, err := order.ParseDeliveryMethod(string(details.DeliveryMethod))
	if err != nil {
		return err
	}
	details.DeliveryMethod = method
	c.details = details
	return nil
}
