package order_test

import (
	"testing"

	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_NextStatuses(t *testing.T) {
	tests := []struct {
		from order.Status
		want []order.Status
	}{
		{order.Draft, []order.Status{order.Issued, order.Cancelled}},
		{order.Issued, []order.Status{order.InProgress, order.Cancelled}},
		{order.InProgress, []order.Status{order.Completed, order.Cancelled}},
		{order.Completed, []order.Status{}},
		{order.Cancelled, []order.Status{}},
	}

	for _, tt := range tests {
		t.Run("should list next statuses of "+tt.from.String(), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, tt.from.NextStatuses())
		})
	}

	t.Run("should not expose the transition table", func(t *testing.T) {
		next := order.Draft.NextStatuses()
		next[0] = order.Completed

		assert.False(t, order.Draft.CanTransition(order.Completed))
	})

	t.Run("should have nothing after unknown", func(t *testing.T) {
		assert.Empty(t, order.Unknown.NextStatuses())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		t.Run("should agree with next statuses for "+s.String(), func(t *testing.T) {
			assert.Equal(t, len(s.NextStatuses()) == 0, s.IsTerminal())
		})
	}

	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Draft.IsTerminal())
	assert.False(t, order.Unknown.IsTerminal())
}

func TestStatus_CanTransition(t *testing.T) {
	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			want := false
			for _, next := range from.NextStatuses() {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should move along the lifecycle", func(t *testing.T) {
		next, err := order.Issued.TransitionTo(order.InProgress)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, next)
	})

	t.Run("should reject skipping in progress", func(t *testing.T) {
		_, err := order.Issued.TransitionTo(order.Completed)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Issued, transitionErr.From)
		assert.Equal(t, order.Completed, transitionErr.To)
		assert.Equal(t, "invalid status transition: ISSUED -> COMPLETED", err.Error())
	})

	t.Run("should reject any move out of cancelled", func(t *testing.T) {
		for _, to := range order.AllStatuses() {
			_, err := order.Cancelled.TransitionTo(to)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		_, err := order.Draft.TransitionTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every valid status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should ignore case and spaces", func(t *testing.T) {
		parsed, err := order.ParseStatus(" in_progress ")
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("SHIPPED")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Presentation(t *testing.T) {
	assert.Equal(t, "In progress", order.InProgress.Label())
	assert.Equal(t, "Unknown", order.Status(42).Label())
	assert.Equal(t, "green", order.Completed.Badge())
	assert.Equal(t, "red", order.Cancelled.Badge())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
	require.Error(t, order.Status(42).Validate())
}
