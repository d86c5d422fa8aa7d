package order_test

import (
	"testing"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	subcontractor := order.Subcontractor{ID: kernel.NewUUID(), Name: "Acme Dyeing"}

	t.Run("should create a draft with version 0", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), " SC-001 ", subcontractor, "dyeing", issuedDate)

		require.NoError(t, err)
		assert.Equal(t, "SC-001", o.Number())
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, int64(0), o.Version())
		assert.Empty(t, o.Items())
		assert.Empty(t, o.Shipments())
		require.NoError(t, o.Validate())
	})

	t.Run("should join every validation failure", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", order.Subcontractor{}, "", time.Time{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "operation")
		assert.Contains(t, err.Error(), "issuedDate")
	})

	t.Run("should require a subcontractor name", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "SC-002", order.Subcontractor{ID: kernel.NewUUID()}, "cmt", issuedDate)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should keep items in insertion order", func(t *testing.T) {
		o := newDraftOrder(t, 100, 20)

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 100, items[0].IssuedQty())
		assert.Equal(t, 20, items[1].IssuedQty())
	})

	t.Run("should reject a product twice", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		dup, err := order.NewItem(kernel.NewUUID(), productOf(t, o, 0), "Cotton fabric", "FAB-01", 5)
		require.NoError(t, err)

		require.ErrorIs(t, o.AddItem(dup), order.ErrDuplicateProduct)
	})

	t.Run("should reject new lines once issued", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		moveTo(t, o, order.Issued)

		require.ErrorIs(t, o.AddItem(newItem(t, 5)), order.ErrItemsAreFixed)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should not share item state with callers", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		item := newItem(t, 10)
		require.NoError(t, o.AddItem(item))

		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, item.ProductID(), 3, 0, 0)))
		require.NoError(t, err)

		assert.Equal(t, 0, item.ReturnedQty())
		stored, ok := o.Item(item.ProductID())
		require.True(t, ok)
		assert.Equal(t, 3, stored.ReturnedQty())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should leave status untouched on rejection", func(t *testing.T) {
		o := newDraftOrder(t, 100)

		err := o.ChangeStatus(order.InProgress)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should not touch quantities", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		moveTo(t, o, order.Issued)
		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, productOf(t, o, 0), 30, 0, 0)))
		require.NoError(t, err)

		moveTo(t, o, order.InProgress, order.Completed)

		assert.Equal(t, 70, o.Items()[0].RemainingQty())
	})
}

func TestOrder_CorrectItemTotals(t *testing.T) {
	at := issuedDate.Add(72 * time.Hour)

	t.Run("should record an audit entry", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		product := productOf(t, o, 0)
		moveTo(t, o, order.Issued)

		item, err := o.CorrectItemTotals(product, order.Receipt{Returned: 5}, "", at)

		require.NoError(t, err)
		assert.Equal(t, 5, item.ReturnedQty())
		require.Len(t, o.Corrections(), 1)
		assert.True(t, o.Corrections()[0].ProductID().IsEqual(product))
	})

	t.Run("should reject unknown products", func(t *testing.T) {
		o := newDraftOrder(t, 100)

		_, err := o.CorrectItemTotals(kernel.NewUUID(), order.Receipt{Returned: 5}, "", at)

		require.ErrorIs(t, err, order.ErrUnknownProduct)
	})

	t.Run("should reject terminal orders", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		moveTo(t, o, order.Issued, order.InProgress, order.Completed)

		_, err := o.CorrectItemTotals(productOf(t, o, 0), order.Receipt{Returned: 5}, "", at)

		require.ErrorIs(t, err, order.ErrOrderTerminal)
		assert.Empty(t, o.Corrections())
	})

	t.Run("should keep nothing on rejection", func(t *testing.T) {
		o := newDraftOrder(t, 100)

		_, err := o.CorrectItemTotals(productOf(t, o, 0), order.Receipt{Returned: 101}, "", at)

		require.ErrorIs(t, err, order.ErrExceedsIssued)
		assert.Empty(t, o.Corrections())
		assert.Equal(t, 100, o.Items()[0].RemainingQty())
	})
}

func TestOrder_PlanningFields(t *testing.T) {
	t.Run("should accept a return date after issue", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		due := issuedDate.Add(14 * 24 * time.Hour)

		require.NoError(t, o.PlanReturn(&due))

		require.NotNil(t, o.ExpectedReturnDate())
		assert.Equal(t, due, *o.ExpectedReturnDate())
	})

	t.Run("should reject a return date before issue", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		early := issuedDate.Add(-time.Hour)

		require.ErrorIs(t, o.PlanReturn(&early), errs.ErrValueIsInvalid)
		assert.Nil(t, o.ExpectedReturnDate())
	})

	t.Run("should keep the estimate informational", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		cost := decimal.RequireFromString("1250.50")

		require.NoError(t, o.Estimate(&cost))
		assert.True(t, cost.Equal(*o.EstimatedCost()))

		negative := decimal.NewFromInt(-1)
		require.ErrorIs(t, o.Estimate(&negative), errs.ErrValueIsInvalid)
	})
}

func TestOrder_IsOverdue(t *testing.T) {
	due := issuedDate.Add(7 * 24 * time.Hour)
	late := due.Add(time.Hour)

	t.Run("should be overdue with goods out past due date", func(t *testing.T) {
		o := newDraftOrder(t, 10)
		require.NoError(t, o.PlanReturn(&due))
		moveTo(t, o, order.Issued)

		assert.True(t, o.IsOverdue(late))
		assert.False(t, o.IsOverdue(due.Add(-time.Hour)))
	})

	t.Run("should not be overdue once everything is back", func(t *testing.T) {
		o := newDraftOrder(t, 10)
		require.NoError(t, o.PlanReturn(&due))
		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, productOf(t, o, 0), 9, 1, 0)))
		require.NoError(t, err)

		assert.False(t, o.IsOverdue(late))
	})

	t.Run("should not be overdue when closed", func(t *testing.T) {
		o := newDraftOrder(t, 10)
		require.NoError(t, o.PlanReturn(&due))
		moveTo(t, o, order.Cancelled)

		assert.False(t, o.IsOverdue(late))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should rebuild the same state", func(t *testing.T) {
		o := newDraftOrder(t, 100, 40)
		moveTo(t, o, order.Issued)
		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, productOf(t, o, 0), 10, 1, 0)))
		require.NoError(t, err)
		_, err = o.CorrectItemTotals(productOf(t, o, 1), order.Receipt{Returned: 4}, "", issuedDate)
		require.NoError(t, err)
		snapshot := o.Snapshot()
		snapshot.Version = 7

		restored, err := order.RestoreOrder(snapshot)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, order.Issued, restored.Status())
		assert.Equal(t, int64(7), restored.Version())
		assert.Equal(t, o.Items()[0].Received(), restored.Items()[0].Received())
		assert.Len(t, restored.Shipments(), 1)
		assert.Len(t, restored.Corrections(), 1)
	})

	t.Run("should reject shipments for unknown products", func(t *testing.T) {
		o := newDraftOrder(t, 100)
		snapshot := o.Snapshot()
		snapshot.Shipments = []order.Shipment{shipment(t, order.Outbound, line(t, kernel.NewUUID(), 1, 0, 0))}

		_, err := order.RestoreOrder(snapshot)

		require.ErrorIs(t, err, order.ErrUnknownProduct)
	})

	t.Run("should reject outbound history above issued", func(t *testing.T) {
		o := newDraftOrder(t, 10)
		product := productOf(t, o, 0)
		snapshot := o.Snapshot()
		snapshot.Shipments = []order.Shipment{
			shipment(t, order.Outbound, line(t, product, 6, 0, 0)),
			shipment(t, order.Outbound, line(t, product, 5, 0, 0)),
		}

		_, err := order.RestoreOrder(snapshot)

		var exceeds *order.ExceedsIssuedError
		require.ErrorAs(t, err, &exceeds)
		assert.Equal(t, order.Outbound, exceeds.Direction)
		assert.Equal(t, 11, exceeds.Attempted)
		assert.Equal(t, 10, exceeds.Issued)
	})

	t.Run("should accept outbound history up to issued", func(t *testing.T) {
		o := newDraftOrder(t, 10)
		product := productOf(t, o, 0)
		snapshot := o.Snapshot()
		snapshot.Shipments = []order.Shipment{
			shipment(t, order.Outbound, line(t, product, 6, 0, 0)),
			shipment(t, order.Outbound, line(t, product, 4, 0, 0)),
		}

		restored, err := order.RestoreOrder(snapshot)

		require.NoError(t, err)
		assert.Len(t, restored.Shipments(), 2)
	})

	t.Run("should reject invalid status and version", func(t *testing.T) {
		snapshot := newDraftOrder(t, 1).Snapshot()
		snapshot.Status = order.Unknown
		_, err := order.RestoreOrder(snapshot)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		snapshot.Status = order.Draft
		snapshot.Version = -1
		_, err = order.RestoreOrder(snapshot)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("should advance version", func(t *testing.T) {
		o := newDraftOrder(t, 1)
		o.AdvanceVersion()
		o.AdvanceVersion()
		assert.Equal(t, int64(2), o.Version())
	})
}
