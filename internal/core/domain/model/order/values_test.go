package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should trim and keep every part", func(t *testing.T) {
		a, err := order.NewAddress(" Rua das Flores ", "120", "Centro", "Campinas", "13010-000", "apto 3")

		require.NoError(t, err)
		assert.Equal(t, "Rua das Flores", a.Street())
		assert.Equal(t, "120", a.Number())
		assert.Equal(t, "Centro", a.District())
		assert.Equal(t, "Campinas", a.City())
		assert.Equal(t, "13010-000", a.PostalCode())
		assert.Equal(t, "apto 3", a.Complement())
	})

	t.Run("should report every missing required part", func(t *testing.T) {
		_, err := order.NewAddress("", " ", "", "", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "address street")
		assert.Contains(t, err.Error(), "address number")
		assert.Contains(t, err.Error(), "address district")
		assert.Contains(t, err.Error(), "address city")
	})

	t.Run("should not require postal code or complement", func(t *testing.T) {
		_, err := order.NewAddress("Rua A", "1", "Centro", "Campinas", "", "")

		require.NoError(t, err)
	})
}

func TestNewLineItem(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should compute the line total", func(t *testing.T) {
		item, err := order.NewLineItem(productID, "Pizza", 3, kernel.MustMoney("12.50"))

		require.NoError(t, err)
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, "Pizza", item.Title())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "37.50", item.Total().String())
	})

	t.Run("should reject quantity below one", func(t *testing.T) {
		_, err := order.NewLineItem(productID, "Pizza", 0, kernel.MustMoney("1"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject a negative unit price", func(t *testing.T) {
		_, err := order.NewLineItem(productID, "Pizza", 1, kernel.MustMoney("-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), kernel.ErrMoneyIsNegative.Error())
	})

	t.Run("should reject an empty product id", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.UUID{}, "Pizza", 1, kernel.MustMoney("1"))

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestTotals_Validate(t *testing.T) {
	item, err := order.NewLineItem(kernel.NewUUID(), "Pizza", 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	items := []order.LineItem{item}

	t.Run("should accept consistent totals", func(t *testing.T) {
		totals := order.Totals{
			Subtotal:    kernel.MustMoney("20.00"),
			DeliveryFee: kernel.MustMoney("5.00"),
			Discount:    kernel.MustMoney("3.00"),
			Total:       kernel.MustMoney("22.00"),
		}

		assert.NoError(t, totals.Validate(items))
	})

	t.Run("should clamp the expected total at zero", func(t *testing.T) {
		totals := order.Totals{
			Subtotal: kernel.MustMoney("20.00"),
			Discount: kernel.MustMoney("50.00"),
			Total:    kernel.ZeroMoney(),
		}

		assert.Equal(t, "0.00", totals.ExpectedTotal().String())
		assert.NoError(t, totals.Validate(items))
	})

	t.Run("should reject a subtotal that does not match the items", func(t *testing.T) {
		totals := order.Totals{Subtotal: kernel.MustMoney("19.99"), Total: kernel.MustMoney("19.99")}

		err := totals.Validate(items)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal")
	})

	t.Run("should reject a wrong total", func(t *testing.T) {
		totals := order.Totals{Subtotal: kernel.MustMoney("20.00"), Total: kernel.MustMoney("25.00")}

		err := totals.Validate(items)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match expected 20.00")
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		totals := order.Totals{
			Subtotal:    kernel.MustMoney("20.00"),
			DeliveryFee: kernel.MustMoney("-1.00"),
			Total:       kernel.MustMoney("19.00"),
		}

		err := totals.Validate(items)

		require.Error(t, err)
		assert.Contains(t, err.Error(), kernel.ErrMoneyIsNegative.Error())
	})
}

func TestParseDeliveryMethod(t *testing.T) {
	method, err := order.ParseDeliveryMethod("")
	require.NoError(t, err)
	assert.Equal(t, order.Delivery, method)

	method, err = order.ParseDeliveryMethod("pickup")
	require.NoError(t, err)
	assert.Equal(t, order.Pickup, method)

	_, err = order.ParseDeliveryMethod("drone")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
