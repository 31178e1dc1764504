package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	customer := newActor(t, actor.Customer)
	items := []commands.OrderItemRequest{{ProductID: kernel.NewUUID(), Quantity: 2}}

	t.Run("should build a command with a fresh order id", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(customer, customer.ID(), 1, items,
			kernel.MustMoney("3.00"), kernel.ZeroMoney(), order.Details{PaymentMethod: "pix"})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.NoError(t, cmd.OrderID().Validate())
		assert.True(t, cmd.CustomerID().IsEqual(customer.ID()))
		assert.Equal(t, 1, cmd.AddressIndex())
		assert.Equal(t, items, cmd.Items())
		assert.Equal(t, order.Delivery, cmd.Details().DeliveryMethod)
		assert.Equal(t, "3.00", cmd.DeliveryFee().String())
	})

	t.Run("should reject empty items and bad quantities", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(customer, customer.ID(), 0, nil,
			kernel.ZeroMoney(), kernel.ZeroMoney(), order.Details{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewCreateOrderCommand(customer, customer.ID(), 0,
			[]commands.OrderItemRequest{{ProductID: kernel.NewUUID(), Quantity: 0}},
			kernel.ZeroMoney(), kernel.ZeroMoney(), order.Details{})
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject a negative address index", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(customer, customer.ID(), -1, items,
			kernel.ZeroMoney(), kernel.ZeroMoney(), order.Details{})

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject a missing customer", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(customer, kernel.UUID{}, 0, items,
			kernel.ZeroMoney(), kernel.ZeroMoney(), order.Details{})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestStatusCommandConstructors(t *testing.T) {
	courier := newActor(t, actor.Courier)
	orderID := kernel.NewUUID()

	t.Run("should build every command", func(t *testing.T) {
		change, err := commands.NewChangeOrderStatusCommand(courier, orderID, "Pronto")
		require.NoError(t, err)
		assert.Equal(t, "Pronto", change.Status())

		claim, err := commands.NewClaimOrderCommand(courier, orderID)
		require.NoError(t, err)
		assert.True(t, claim.OrderID().IsEqual(orderID))

		confirm, err := commands.NewConfirmDeliveryCommand(courier, orderID, " 4321 ")
		require.NoError(t, err)
		assert.Equal(t, "4321", confirm.Code())
	})

	t.Run("should reject an empty order id", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(courier, kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		_, err = commands.NewConfirmDeliveryCommand(courier, kernel.UUID{}, "1234")
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		_, err = commands.NewChangeOrderStatusCommand(courier, kernel.UUID{}, "Pronto")
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject zero value commands", func(t *testing.T) {
		assert.ErrorIs(t, (commands.ClaimOrderCommand{}).Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
		assert.ErrorIs(t, (commands.ConfirmDeliveryCommand{}).Validate(), commands.ErrConfirmDeliveryCommandIsNotConstructed)
		assert.ErrorIs(t, (commands.ChangeOrderStatusCommand{}).Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
