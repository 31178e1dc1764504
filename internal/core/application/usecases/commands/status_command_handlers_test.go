package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statusFixture struct {
	repo     *MockOrderRepository
	history  *MockHistoryRepository
	uow      *MockUoW
	factory  *MockUoWFactory
	notifier *MockNotifier
}

func newStatusFixture() *statusFixture {
	f := &statusFixture{
		repo:     new(MockOrderRepository),
		history:  new(MockHistoryRepository),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		notifier: new(MockNotifier),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	return f
}

func (f *statusFixture) expectLoad(o *order.Order) {
	f.repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
}

func (f *statusFixture) expectWrite(actorID kernel.UUID, status order.Status) {
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.uow.On("StatusHistoryRepository").Return(f.history).Once()
	f.history.On("Append", mock.Anything, mock.MatchedBy(func(c order.StatusChange) bool {
		return c.ActorID().IsEqual(actorID) && c.NewStatus() == status
	})).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Type == ports.OrderStatusChanged && e.Status == status && e.ActorID.IsEqual(actorID)
	})).Return(nil).Once()
}

func (f *statusFixture) assertNothingWritten(t *testing.T) {
	t.Helper()
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should update the order and append one audit entry", func(t *testing.T) {
		// Given
		staff := newActor(t, actor.Staff)
		o := orderInStatus(t, order.Pending)
		f := newStatusFixture()
		f.expectLoad(o)
		f.expectWrite(staff.ID(), order.InPreparation)
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(staff, o.ID(), "Em preparo")
		require.NoError(t, err)

		// When
		updated, err := handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.InPreparation, updated.Status())
		f.repo.AssertExpectations(t)
		f.history.AssertNumberOfCalls(t, "Append", 1)
		f.uow.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("should report a missing order before an unknown status", func(t *testing.T) {
		f := newStatusFixture()
		id := kernel.NewUUID()
		f.repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, actor.Staff), id, "Shipped")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.assertNothingWritten(t)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		o := orderInStatus(t, order.Pending)
		f := newStatusFixture()
		f.expectLoad(o)
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, actor.Staff), o.ID(), "pronto")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.assertNothingWritten(t)
	})

	t.Run("should deny couriers", func(t *testing.T) {
		o := orderInStatus(t, order.Ready)
		f := newStatusFixture()
		f.expectLoad(o)
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, actor.Courier), o.ID(), "Entregue")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		f.assertNothingWritten(t)
	})

	t.Run("should return a retryable conflict when another writer won", func(t *testing.T) {
		o := orderInStatus(t, order.Ready)
		f := newStatusFixture()
		f.expectLoad(o)
		f.repo.On("Update", mock.Anything, o).Return(errs.NewConcurrencyConflictError("order", o.ID())).Once()
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, actor.Administrator), o.ID(), "Cancelado")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		assert.True(t, errs.IsRetryable(err))
		f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should not commit the status when the audit entry fails", func(t *testing.T) {
		o := orderInStatus(t, order.Ready)
		f := newStatusFixture()
		f.expectLoad(o)
		f.repo.On("Update", mock.Anything, o).Return(nil).Once()
		f.uow.On("StatusHistoryRepository").Return(f.history).Once()
		f.history.On("Append", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		handler := commands.NewChangeOrderStatusCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewChangeOrderStatusCommand(newActor(t, actor.Staff), o.ID(), "Cancelado")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
	})
}

func TestClaimOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should claim a ready order", func(t *testing.T) {
		courier := newActor(t, actor.Courier)
		o := orderInStatus(t, order.Ready)
		f := newStatusFixture()
		f.expectLoad(o)
		f.expectWrite(courier.ID(), order.OutForDelivery)
		handler := commands.NewClaimOrderCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewClaimOrderCommand(courier, o.ID())
		require.NoError(t, err)

		claimed, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, claimed.Status())
		f.history.AssertNumberOfCalls(t, "Append", 1)
	})

	t.Run("should not write anything when already out for delivery", func(t *testing.T) {
		o := orderInStatus(t, order.OutForDelivery)
		f := newStatusFixture()
		f.expectLoad(o)
		handler := commands.NewClaimOrderCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewClaimOrderCommand(newActor(t, actor.Courier), o.ID())
		require.NoError(t, err)

		claimed, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, claimed.Status())
		f.assertNothingWritten(t)
	})

	t.Run("should reject a pending order", func(t *testing.T) {
		o := orderInStatus(t, order.Pending)
		f := newStatusFixture()
		f.expectLoad(o)
		handler := commands.NewClaimOrderCommandHandler(f.factory, f.notifier, discardLogger())
		cmd, err := commands.NewClaimOrderCommand(newActor(t, actor.Courier), o.ID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		f.assertNothingWritten(t)
	})
}

func TestConfirmDeliveryCommandHandler_Handle(t *testing.T) {
	phoneOwner := func(o *order.Order) ports.Customer {
		return ports.Customer{ID: o.CustomerID(), Name: "Ana", Phone: kernel.NewPhone("(11) 98765-4321")}
	}

	t.Run("should deliver with the last four phone digits", func(t *testing.T) {
		courier := newActor(t, actor.Courier)
		o := orderInStatus(t, order.OutForDelivery)
		f := newStatusFixture()
		f.expectLoad(o)
		f.expectWrite(courier.ID(), order.Delivered)
		customers := new(MockCustomers)
		customers.On("GetCustomer", mock.Anything, o.CustomerID()).Return(phoneOwner(o), nil).Once()
		handler := commands.NewConfirmDeliveryCommandHandler(f.factory, customers, f.notifier, discardLogger())
		cmd, err := commands.NewConfirmDeliveryCommand(courier, o.ID(), "4321")
		require.NoError(t, err)

		delivered, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, delivered.Status())
		f.history.AssertNumberOfCalls(t, "Append", 1)
		f.notifier.AssertExpectations(t)
	})

	t.Run("should fail verification with a wrong code", func(t *testing.T) {
		o := orderInStatus(t, order.OutForDelivery)
		f := newStatusFixture()
		f.expectLoad(o)
		customers := new(MockCustomers)
		customers.On("GetCustomer", mock.Anything, o.CustomerID()).Return(phoneOwner(o), nil).Once()
		handler := commands.NewConfirmDeliveryCommandHandler(f.factory, customers, f.notifier, discardLogger())
		cmd, err := commands.NewConfirmDeliveryCommand(newActor(t, actor.Courier), o.ID(), "1234")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrVerificationFailed)
		f.assertNothingWritten(t)
	})

	t.Run("should fail on a ready order even with the right code", func(t *testing.T) {
		o := orderInStatus(t, order.Ready)
		f := newStatusFixture()
		f.expectLoad(o)
		customers := new(MockCustomers)
		customers.On("GetCustomer", mock.Anything, o.CustomerID()).Return(phoneOwner(o), nil).Once()
		handler := commands.NewConfirmDeliveryCommandHandler(f.factory, customers, f.notifier, discardLogger())
		cmd, err := commands.NewConfirmDeliveryCommand(newActor(t, actor.Courier), o.ID(), "4321")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		f.assertNothingWritten(t)
	})
}
