package order_test

import (
	"testing"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipmentLine(t *testing.T) {
	t.Run("should reject negative quantities", func(t *testing.T) {
		_, err := order.NewShipmentLine(kernel.NewUUID(), 5, -1, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := order.NewShipmentLine(kernel.NewUUID(), 0, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should accept defect only lines", func(t *testing.T) {
		l, err := order.NewShipmentLine(kernel.NewUUID(), 0, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, order.Receipt{Defect: 2}, l.Receipt())
	})
}

func TestNewShipment(t *testing.T) {
	product := kernel.NewUUID()

	t.Run("should reject defect on outbound", func(t *testing.T) {
		_, err := order.NewShipment(kernel.NewUUID(), order.Outbound, issuedDate, warehouseID, "",
			[]order.ShipmentLine{line(t, product, 5, 1, 0)})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require direction warehouse and date", func(t *testing.T) {
		_, err := order.NewShipment(kernel.NewUUID(), order.UnknownDirection, time.Time{}, kernel.UUID{}, "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should be immutable", func(t *testing.T) {
		lines := []order.ShipmentLine{line(t, product, 5, 0, 0)}
		s, err := order.NewShipment(kernel.NewUUID(), order.Inbound, issuedDate, warehouseID, "DN-7", lines)
		require.NoError(t, err)

		lines[0] = line(t, product, 99, 0, 0)
		got := s.Lines()
		got[0] = line(t, product, 42, 0, 0)

		assert.Equal(t, 5, s.Lines()[0].Quantity())
		assert.Equal(t, "DN-7", s.DeliveryNoteNumber())
		require.NoError(t, s.Validate())
	})

	t.Run("should reject zero value shipments", func(t *testing.T) {
		require.ErrorIs(t, order.Shipment{}.Validate(), order.ErrShipmentIsNotConstructed)
	})
}

func TestParseDirection(t *testing.T) {
	d, err := order.ParseDirection("inbound")
	require.NoError(t, err)
	assert.Equal(t, order.Inbound, d)

	_, err = order.ParseDirection("sideways")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.UnknownDirection.String())
}

func TestRestoreItem(t *testing.T) {
	t.Run("should restore a consistent receipt", func(t *testing.T) {
		item, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "Denim", "DN", 10,
			order.Receipt{Returned: 4, Defect: 1, Wastage: 1})

		require.NoError(t, err)
		assert.Equal(t, 4, item.RemainingQty())
	})

	t.Run("should reject a receipt above issued", func(t *testing.T) {
		_, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "Denim", "DN", 10,
			order.Receipt{Returned: 11})

		require.ErrorIs(t, err, order.ErrExceedsIssued)
	})

	t.Run("should reject non positive issued quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Denim", "DN", 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
