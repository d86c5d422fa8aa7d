// Package commands contains the operations that change subcontract orders.
// Every handler follows the same shape: validate the command, begin a unit of
// work, load the aggregate, mutate it, persist it with a version check and
// commit. A failure at any step leaves the stored order untouched.
package commands

import (
	"context"

	"subcontract/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... load, mutate, Update
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a new order unit of work per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
