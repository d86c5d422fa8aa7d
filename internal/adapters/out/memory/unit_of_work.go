package memory

import (
	"context"
	"errors"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("memory: no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork collects the writes of one command and applies them to the
// store in one step on Commit. Versions are checked both when a write is
// buffered and again on Commit.
type UnitOfWork struct {
	store   *Store
	active  bool
	pending []write
	tracked []kernel.UUID
}

// Begin opens the transaction. Calling it twice keeps the first one.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	err := uow.store.apply(uow.pending)
	uow.active = false
	uow.pending = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	uow.active = false
	uow.pending = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, _ any) {
	uow.tracked = append(uow.tracked, id)
}

// TrackedAggregates returns the ids written so far, in write order.
func (uow *UnitOfWork) TrackedAggregates() []kernel.UUID {
	out := make([]kernel.UUID, len(uow.tracked))
	copy(out, uow.tracked)
	return out
}

func (uow *UnitOfWork) pendingWrites() []write {
	out := make([]write, len(uow.pending))
	copy(out, uow.pending)
	return out
}
