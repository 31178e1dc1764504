package services_test

import (
	"testing"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationCode(t *testing.T) {
	tests := []struct {
		phone string
		code  string
		ok    bool
	}{
		{"(11) 98765-4321", "4321", true},
		{"+55 11 3333 0007", "0007", true},
		{"1234", "1234", true},
		{"12-3", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			code, ok := services.VerificationCode(kernel.NewPhone(tt.phone))

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestDeliveryHandoff_Claim(t *testing.T) {
	handoff := services.NewDeliveryHandoff(services.NewAccessPolicy())

	t.Run("should claim once and then be idempotent", func(t *testing.T) {
		// Given
		courier := newActor(t, actor.Courier)
		o := newOrder(t, kernel.NewUUID(), order.Ready)

		// When
		first, changed, err := handoff.Claim(o, courier, now)
		require.NoError(t, err)
		require.True(t, changed)
		_, changedAgain, err := handoff.Claim(o, courier, now)

		// Then
		require.NoError(t, err)
		assert.False(t, changedAgain)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.True(t, first.ActorID().IsEqual(courier.ID()))
	})

	t.Run("should reject a pending order", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.Pending)

		_, _, err := handoff.Claim(o, newActor(t, actor.Courier), now)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should deny non-couriers", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.Ready)

		_, _, err := handoff.Claim(o, newActor(t, actor.Staff), now)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, order.Ready, o.Status())
	})
}

func TestDeliveryHandoff_Confirm(t *testing.T) {
	handoff := services.NewDeliveryHandoff(services.NewAccessPolicy())
	phone := kernel.NewPhone("(11) 98765-4321")

	t.Run("should deliver with the right code", func(t *testing.T) {
		courier := newActor(t, actor.Courier)
		o := newOrder(t, kernel.NewUUID(), order.OutForDelivery)

		change, err := handoff.Confirm(o, courier, phone, "4321", now)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Delivered, change.NewStatus())
		assert.True(t, change.ActorID().IsEqual(courier.ID()))
	})

	t.Run("should fail with a wrong code", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.OutForDelivery)

		_, err := handoff.Confirm(o, newActor(t, actor.Courier), phone, "1234", now)

		require.ErrorIs(t, err, errs.ErrVerificationFailed)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("should check the status before the code", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.Ready)

		_, err := handoff.Confirm(o, newActor(t, actor.Courier), phone, "4321", now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should fail for every status when the code is wrong", func(t *testing.T) {
		for _, status := range order.Statuses() {
			o := newOrder(t, kernel.NewUUID(), status)

			_, err := handoff.Confirm(o, newActor(t, actor.Courier), phone, "0000", now)

			assert.Error(t, err, status.String())
			assert.Equal(t, status, o.Status())
		}
	})

	t.Run("should never confirm when the phone is too short", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.OutForDelivery)

		_, err := handoff.Confirm(o, newActor(t, actor.Courier), kernel.NewPhone("123"), "123", now)

		assert.ErrorIs(t, err, errs.ErrVerificationFailed)
	})

	t.Run("should deny staff", func(t *testing.T) {
		o := newOrder(t, kernel.NewUUID(), order.OutForDelivery)

		_, err := handoff.Confirm(o, newActor(t, actor.Staff), phone, "4321", now)

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}
