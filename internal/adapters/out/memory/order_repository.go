package memory

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/core/ports"
	"subcontract/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository reads and writes orders in a Store. Bound to a unit of
// work with an open transaction, it buffers writes until Commit; otherwise
// every write is applied immediately.
type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return r.save(ctx, aggregate, true)
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return r.save(ctx, aggregate, false)
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("load order", err)
	}

	snapshot, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	o, err := order.RestoreOrder(snapshot)
	if err != nil {
		return nil, errs.NewStorageError("load order", err)
	}
	return o, nil
}

func (r *OrderRepository) save(ctx context.Context, aggregate *order.Order, insert bool) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.NewStorageError("save order", err)
	}

	snapshot := aggregate.Snapshot()
	snapshot.Version = aggregate.Version() + 1
	w := write{snapshot: snapshot, expected: aggregate.Version(), insert: insert}

	if r.uow != nil && r.uow.active {
		if err := r.store.check(append(r.uow.pendingWrites(), w)); err != nil {
			return err
		}
		r.uow.pending = append(r.uow.pending, w)
	} else if err := r.store.apply([]write{w}); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	if r.uow != nil {
		r.uow.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// lookup prefers the unit of work's own pending writes over the store.
func (r *OrderRepository) lookup(id kernel.UUID) (order.Snapshot, bool) {
	if r.uow != nil {
		for i := len(r.uow.pending) - 1; i >= 0; i-- {
			if r.uow.pending[i].snapshot.ID.IsEqual(id) {
				return r.uow.pending[i].snapshot, true
			}
		}
	}
	return r.store.get(id)
}
