// Package commands contains the order lifecycle operations that modify state.
// Every command follows the same pattern: a constructor that validates input, and
// a handler that authorizes, loads, changes and stores inside one unit of work,
// then publishes a notification once the transaction has committed.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the status history within a transaction.
	HistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// OrderUoW manages transactions that only insert orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions that change an order status. The order update and
	// the audit entry are committed together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   change, err := transitioner.Apply(o, next, actor, now)
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.StatusHistoryRepository().Append(ctx, change)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for status changes.
	UoWFactory interface {
		Create() UoW
	}
)
