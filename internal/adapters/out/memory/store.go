// Package memory keeps orders, status history and a small product and customer
// directory in process memory. It backs STORAGE=memory deployments and the
// scenario tests of the use cases.
//
// Writes go through a UnitOfWork that stages changes and applies them at Commit
// under one lock, checking every staged update against the version it was loaded
// at. A lost race fails with errs.ConcurrencyConflictError, exactly like the
// PostgreSQL adapter.
package memory

import (
	"context"
	"sort"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Store is the shared in-memory state. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	orders  map[kernel.UUID]*order.Order
	history map[kernel.UUID][]order.StatusChange
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[kernel.UUID]*order.Order),
		history: make(map[kernel.UUID][]order.StatusChange),
	}
}

// Orders returns a repository that writes straight to the store, each call in its
// own unit of work. Query handlers use it.
func (s *Store) Orders() ports.OrderRepository {
	return autoCommitOrders{store: s}
}

// History returns a repository that writes straight to the store.
func (s *Store) History() ports.StatusHistoryRepository {
	return autoCommitHistory{store: s}
}

func (s *Store) get(id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return clone(stored, stored.Version())
}

func (s *Store) list(filter ports.OrderFilter) ports.OrderList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result ports.OrderList
	for id, stored := range s.orders {
		if !matches(stored, filter) {
			continue
		}
		o, err := clone(stored, stored.Version())
		if err != nil {
			result.Corrupt = append(result.Corrupt, ports.CorruptOrder{ID: id.String(), Err: err})
			continue
		}
		result.Orders = append(result.Orders, o)
	}

	sort.Slice(result.Orders, func(i, j int) bool {
		a, b := result.Orders[i], result.Orders[j]
		if a.CreatedAt().Equal(b.CreatedAt()) {
			return a.ID().String() > b.ID().String()
		}
		return a.CreatedAt().After(b.CreatedAt())
	})
	return result
}

func (s *Store) historyOf(orderID kernel.UUID) []order.StatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.history[orderID]
	newestFirst := make([]order.StatusChange, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, entries[i])
	}
	return newestFirst
}

// apply writes a staged change set atomically. Nothing is written when any
// insert collides or any update lost its compare-and-swap.
func (s *Store) apply(added, updated []*order.Order, appended []order.StatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range added {
		if _, exists := s.orders[o.ID()]; exists {
			return errs.NewConcurrencyConflictError("order", o.ID())
		}
	}
	for _, o := range updated {
		stored, exists := s.orders[o.ID()]
		if !exists {
			return errs.NewObjectNotFoundError("order", o.ID())
		}
		if stored.Version() != o.Version() {
			return errs.NewConcurrencyConflictError("order", o.ID())
		}
	}
	for _, change := range appended {
		if _, exists := s.orders[change.OrderID()]; !exists && !containsOrder(added, change.OrderID()) {
			return errs.NewObjectNotFoundError("order", change.OrderID())
		}
	}

	for _, o := range added {
		stored, err := clone(o, 1)
		if err != nil {
			return err
		}
		s.orders[o.ID()] = stored
	}
	for _, o := range updated {
		stored, err := clone(o, o.Version()+1)
		if err != nil {
			return err
		}
		s.orders[o.ID()] = stored
	}
	for _, change := range appended {
		s.history[change.OrderID()] = append(s.history[change.OrderID()], change)
	}
	return nil
}

func matches(o *order.Order, filter ports.OrderFilter) bool {
	if filter.CustomerID != nil && !o.IsOwnedBy(*filter.CustomerID) {
		return false
	}
	if len(filter.Statuses) == 0 {
		return true
	}
	for _, s := range filter.Statuses {
		if o.Status() == s {
			return true
		}
	}
	return false
}

func containsOrder(orders []*order.Order, id kernel.UUID) bool {
	for _, o := range orders {
		if o.ID().IsEqual(id) {
			return true
		}
	}
	return false
}

// clone rebuilds o through RestoreOrder so the store never shares an aggregate
// with its callers.
func clone(o *order.Order, version int) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(), o.CustomerID(), o.DeliveryAddress(), o.Items(), o.Totals(), o.Details(),
		o.Status(), o.CreatedAt(), o.UpdatedAt(), version,
	)
}

type autoCommitOrders struct{ store *Store }

func (r autoCommitOrders) Add(ctx context.Context, aggregate *order.Order) error {
	return r.store.autoCommit(ctx, func(uow *UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, aggregate)
	})
}

func (r autoCommitOrders) Update(ctx context.Context, aggregate *order.Order) error {
	return r.store.autoCommit(ctx, func(uow *UnitOfWork) error {
		return uow.OrderRepository().Update(ctx, aggregate)
	})
}

func (r autoCommitOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return r.store.get(id)
}

func (r autoCommitOrders) List(_ context.Context, filter ports.OrderFilter) (ports.OrderList, error) {
	return r.store.list(filter), nil
}

type autoCommitHistory struct{ store *Store }

func (r autoCommitHistory) Append(ctx context.Context, change order.StatusChange) error {
	return r.store.autoCommit(ctx, func(uow *UnitOfWork) error {
		return uow.StatusHistoryRepository().Append(ctx, change)
	})
}

func (r autoCommitHistory) ListByOrder(_ context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	return r.store.historyOf(orderID), nil
}

func (s *Store) autoCommit(ctx context.Context, fn func(uow *UnitOfWork) error) error {
	uow := NewUnitOfWorkFactory(s).Create().(*UnitOfWork)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
