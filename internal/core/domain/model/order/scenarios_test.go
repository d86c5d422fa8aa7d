package order_test

import (
	"math/rand/v2"
	"testing"

	"subcontract/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubcontractOrderLifecycle walks order SC-001 (one item, 100 issued)
// through its documented life.
func TestSubcontractOrderLifecycle(t *testing.T) {
	t.Run("should require in progress before completion", func(t *testing.T) {
		o := newDraftOrder(t, 100)

		require.NoError(t, o.ChangeStatus(order.Issued))
		err := o.ChangeStatus(order.Completed)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Issued, o.Status())
	})

	o := newDraftOrder(t, 100)
	product := productOf(t, o, 0)
	moveTo(t, o, order.Issued, order.InProgress)

	t.Run("should cap outbound at issued quantity", func(t *testing.T) {
		_, err := o.RecordShipment(shipment(t, order.Outbound, line(t, product, 100, 0, 0)))
		require.NoError(t, err)

		_, err = o.RecordShipment(shipment(t, order.Outbound, line(t, product, 1, 0, 0)))

		var exceeds *order.ExceedsIssuedError
		require.ErrorAs(t, err, &exceeds)
		assert.Equal(t, 100, exceeds.Issued)
		assert.Equal(t, 101, exceeds.Attempted)
		assert.Len(t, o.Shipments(), 1)
	})

	t.Run("should accumulate inbound receipt", func(t *testing.T) {
		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, product, 90, 5, 3)))
		require.NoError(t, err)

		item, _ := o.Item(product)
		assert.Equal(t, 90, item.ReturnedQty())
		assert.Equal(t, 5, item.DefectQty())
		assert.Equal(t, 3, item.WastageQty())
		assert.Equal(t, 2, item.RemainingQty())
	})

	t.Run("should reject inbound above remaining and accept the rest", func(t *testing.T) {
		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, product, 3, 0, 0)))

		var exceeds *order.ExceedsIssuedError
		require.ErrorAs(t, err, &exceeds)
		assert.Equal(t, 101, exceeds.Attempted)

		_, err = o.RecordShipment(shipment(t, order.Inbound, line(t, product, 2, 0, 0)))
		require.NoError(t, err)

		item, _ := o.Item(product)
		assert.Equal(t, 0, item.RemainingQty())
	})

	t.Run("should refuse shipments after completion", func(t *testing.T) {
		require.NoError(t, o.ChangeStatus(order.Completed))

		_, err := o.RecordShipment(shipment(t, order.Inbound, line(t, product, 1, 0, 0)))

		require.ErrorIs(t, err, order.ErrOrderTerminal)
	})

	t.Run("should cancel a draft and then refuse every transition", func(t *testing.T) {
		draft := newDraftOrder(t, 100)

		require.NoError(t, draft.ChangeStatus(order.Cancelled))
		for _, to := range order.AllStatuses() {
			require.ErrorIs(t, draft.ChangeStatus(to), order.ErrInvalidTransition)
		}
		assert.Equal(t, order.Cancelled, draft.Status())
	})
}

// TestConservationHoldsUnderRandomReceipts feeds random inbound shipments and
// corrections into an order and checks the quantity rules after every step.
func TestConservationHoldsUnderRandomReceipts(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 2024))

	for run := range 50 {
		issued := []int{1 + rng.IntN(60), 1 + rng.IntN(60), 1 + rng.IntN(60)}
		o := newDraftOrder(t, issued...)
		moveTo(t, o, order.Issued, order.InProgress)
		corrected := false

		for step := range 40 {
			before := o.Snapshot()
			var err error

			switch rng.IntN(4) {
			case 0:
				product := productOf(t, o, rng.IntN(len(issued)))
				_, err = o.CorrectItemTotals(product, order.Receipt{
					Returned: rng.IntN(30), Defect: rng.IntN(5), Wastage: rng.IntN(5),
				}, "stock count", issuedDate)
				corrected = corrected || err == nil
			case 1:
				product := productOf(t, o, rng.IntN(len(issued)))
				_, err = o.RecordShipment(shipment(t, order.Outbound, line(t, product, 1+rng.IntN(25), 0, 0)))
			default:
				lines := make([]order.ShipmentLine, 0, 3)
				for range 1 + rng.IntN(3) {
					product := productOf(t, o, rng.IntN(len(issued)))
					lines = append(lines, line(t, product, 1+rng.IntN(15), rng.IntN(3), rng.IntN(3)))
				}
				_, err = o.RecordShipment(shipment(t, order.Inbound, lines...))
			}

			if err != nil {
				require.ErrorIs(t, err, order.ErrExceedsIssued, "run %d step %d", run, step)
				assert.Equal(t, before.Items, o.Items(), "run %d step %d changed items on rejection", run, step)
				assert.Len(t, o.Shipments(), len(before.Shipments))
			}

			outbound := o.ShipmentTotals(order.Outbound)
			inbound := o.ShipmentTotals(order.Inbound)
			for _, item := range o.Items() {
				require.GreaterOrEqual(t, item.RemainingQty(), 0)
				require.LessOrEqual(t, outbound[item.ProductID()].Quantity, item.IssuedQty())
				if !corrected {
					got := inbound[item.ProductID()]
					require.Equal(t, item.Received(), order.Receipt{Returned: got.Quantity, Defect: got.Defect, Wastage: got.Wastage})
				}
			}
		}
	}
}
