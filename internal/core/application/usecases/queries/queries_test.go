package queries_test

import (
	"testing"
	"time"

	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryConstructors(t *testing.T) {
	t.Run("should require an order id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should require a valid direction", func(t *testing.T) {
		_, err := queries.NewGetShipmentTotalsQuery(kernel.NewUUID(), order.UnknownDirection)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require a reference time", func(t *testing.T) {
		_, err := queries.NewGetOverdueOrdersQuery(time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should refuse zero value queries", func(t *testing.T) {
		require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
		require.ErrorIs(t, queries.GetShipmentTotalsQuery{}.Validate(), queries.ErrGetShipmentTotalsQueryIsNotConstructed)
		require.ErrorIs(t, queries.GetOverdueOrdersQuery{}.Validate(), queries.ErrGetOverdueOrdersQueryIsNotConstructed)
	})
}

func TestGetOverdueOrdersQueryResponse_DaysOverdue(t *testing.T) {
	resp := queries.GetOverdueOrdersQueryResponse{
		ExpectedReturnDate: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 5, resp.DaysOverdue(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)))
}
