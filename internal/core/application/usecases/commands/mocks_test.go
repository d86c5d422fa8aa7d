package commands_test

import (
	"context"
	"testing"
	"time"

	"subcontract/internal/core/application/usecases/commands"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/core/ports"

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

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProductDirectory struct{ mock.Mock }

func (m *MockProductDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Product), args.Error(1)
}

type MockWarehouseDirectory struct{ mock.Mock }

func (m *MockWarehouseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var issuedDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// newStoredOrder returns SC-001 with a single 100 piece fabric line, moved
// through the given statuses.
func newStoredOrder(t *testing.T, statuses ...order.Status) (*order.Order, kernel.UUID) {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "SC-001",
		order.Subcontractor{ID: kernel.NewUUID(), Name: "Acme Dyeing"}, "dyeing", issuedDate)
	require.NoError(t, err)

	productID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), productID, "Cotton fabric", "FAB-01", 100)
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))

	for _, s := range statuses {
		require.NoError(t, o.ChangeStatus(s))
	}
	return o, productID
}

// expectTransaction wires a unit of work that begins, hands out repo and
// rolls back at the end. commit reports whether Commit is expected.
func expectTransaction(ctx context.Context, repo *MockOrderRepository, commit bool) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
