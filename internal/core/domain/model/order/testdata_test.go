package order_test

import (
	"fmt"
	"testing"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	issuedDate  = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	warehouseID = kernel.MustUUIDFromString("7a3c9f0e-0b5d-4d8e-9d59-0f3f3c3a1c11")
)

func newDraftOrder(t *testing.T, issued ...int) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"SC-001",
		order.Subcontractor{ID: kernel.NewUUID(), Name: "Acme Dyeing"},
		"dyeing",
		issuedDate,
	)
	require.NoError(t, err)

	for i, qty := range issued {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Cotton fabric", fmt.Sprintf("FAB-%02d", i+1), qty)
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
	}
	return o
}

func moveTo(t *testing.T, o *order.Order, path ...order.Status) {
	t.Helper()
	for _, s := range path {
		require.NoError(t, o.ChangeStatus(s))
	}
}

func line(t *testing.T, productID kernel.UUID, qty, defect, wastage int) order.ShipmentLine {
	t.Helper()
	l, err := order.NewShipmentLine(productID, qty, defect, wastage)
	require.NoError(t, err)
	return l
}

func shipment(t *testing.T, direction order.Direction, lines ...order.ShipmentLine) order.Shipment {
	t.Helper()
	s, err := order.NewShipment(kernel.NewUUID(), direction, issuedDate.Add(24*time.Hour), warehouseID, "DN-1", lines)
	require.NoError(t, err)
	return s
}

func productOf(t *testing.T, o *order.Order, idx int) kernel.UUID {
	t.Helper()
	items := o.Items()
	require.Greater(t, len(items), idx)
	return items[idx].ProductID()
}
