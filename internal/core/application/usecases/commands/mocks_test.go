package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) (ports.OrderList, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(ports.OrderList), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusChange), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetProduct(ctx context.Context, id kernel.UUID) (services.CatalogProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(services.CatalogProduct), args.Error(1)
}

type MockCustomers struct{ mock.Mock }

func (m *MockCustomers) GetCustomer(ctx context.Context, id kernel.UUID) (ports.Customer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Customer), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newActor(t *testing.T, category actor.Category) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), category, category.String())
	require.NoError(t, err)
	return a
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	a, err := order.NewAddress("Rua das Flores", "120", "Centro", "Campinas", "13010-000", "")
	require.NoError(t, err)
	return a
}

func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Pizza", 2, kernel.MustMoney("10.00"))
	require.NoError(t, err)
	totals := order.Totals{Subtotal: item.Total(), Total: item.Total()}
	created := time.Now().Add(-time.Hour)

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), testAddress(t), []order.LineItem{item},
		totals, order.Details{}, status, created, created, 4)
	require.NoError(t, err)
	return o
}
