package memory

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes until Commit. Reads inside the unit of work see its
// own staged orders first.
type UnitOfWork struct {
	store    *Store
	active   bool
	added    []*order.Order
	updated  []*order.Order
	appended []order.StatusChange
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.reset()
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	err := uow.store.apply(uow.added, uow.updated, uow.appended)
	uow.reset()
	return err
}

// Rollback discards staged writes. After Commit it is a no-op.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{uow: uow}
}

func (uow *UnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return historyRepository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.added = nil
	uow.updated = nil
	uow.appended = nil
}

func (uow *UnitOfWork) staged(id kernel.UUID) *order.Order {
	for i := len(uow.updated) - 1; i >= 0; i-- {
		if uow.updated[i].ID().IsEqual(id) {
			return uow.updated[i]
		}
	}
	for _, o := range uow.added {
		if o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	staged, err := clone(aggregate, aggregate.Version())
	if err != nil {
		return err
	}
	r.uow.added = append(r.uow.added, staged)
	return nil
}

func (r orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}

	current, err := r.uow.store.get(aggregate.ID())
	if err != nil {
		return err
	}
	if current.Version() != aggregate.Version() {
		return errs.NewConcurrencyConflictError("order", aggregate.ID())
	}

	staged, err := clone(aggregate, aggregate.Version())
	if err != nil {
		return err
	}
	r.uow.updated = append(r.uow.updated, staged)
	return nil
}

func (r orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if staged := r.uow.staged(id); staged != nil {
		return clone(staged, staged.Version())
	}
	return r.uow.store.get(id)
}

func (r orderRepository) List(_ context.Context, filter ports.OrderFilter) (ports.OrderList, error) {
	return r.uow.store.list(filter), nil
}

type historyRepository struct {
	uow *UnitOfWork
}

func (r historyRepository) Append(_ context.Context, change order.StatusChange) error {
	if err := change.ID().Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	r.uow.appended = append(r.uow.appended, change)
	return nil
}

func (r historyRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	return r.uow.store.historyOf(orderID), nil
}
