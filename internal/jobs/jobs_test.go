package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

type MockOverdueOrdersQueryHandler struct {
	mock.Mock
}

func (m *MockOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query queries.GetOverdueOrdersQuery,
) ([]queries.GetOverdueOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetOverdueOrdersQueryResponse), args.Error(1)
}

type MockJob struct {
	mock.Mock
}

func (m *MockJob) Start() error {
	return m.Called().Error(0)
}

func (m *MockJob) Stop() {
	m.Called()
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestOverdueOrdersJob_Run(t *testing.T) {
	t.Run("should log every overdue order", func(t *testing.T) {
		id := kernel.NewUUID()
		handler := new(MockOverdueOrdersQueryHandler)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOverdueOrdersQuery) bool {
			return q.AsOf().Equal(asOf)
		})).Return([]queries.GetOverdueOrdersQueryResponse{{
			ID:                 id,
			Number:             "SC-001",
			SubcontractorName:  "Acme Dyeing",
			Status:             order.InProgress,
			ExpectedReturnDate: asOf.AddDate(0, 0, -3),
			RemainingQty:       12,
		}}, nil)
		logger, buf := bufferLogger()
		job := jobs.NewOverdueOrdersJob(handler, "", func() time.Time { return asOf }, logger)

		found, err := job.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, found)
		lines := logLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "WARN", lines[0]["level"])
		assert.Equal(t, "overdue_orders_job", lines[0]["component"])
		assert.Equal(t, id.String(), lines[0]["order_id"])
		assert.Equal(t, "IN_PROGRESS", lines[0]["status"])
		assert.EqualValues(t, 3, lines[0]["days_overdue"])
		assert.EqualValues(t, 12, lines[0]["remaining_qty"])
		handler.AssertExpectations(t)
	})

	t.Run("should log and return a failed scan", func(t *testing.T) {
		handler := new(MockOverdueOrdersQueryHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("database is down"))
		logger, buf := bufferLogger()
		job := jobs.NewOverdueOrdersJob(handler, "", func() time.Time { return asOf }, logger)

		_, err := job.Run(context.Background())

		require.Error(t, err)
		lines := logLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "ERROR", lines[0]["level"])
	})
}

func TestOverdueOrdersJob_Schedule(t *testing.T) {
	t.Run("should reject an invalid schedule", func(t *testing.T) {
		logger, _ := bufferLogger()
		job := jobs.NewOverdueOrdersJob(new(MockOverdueOrdersQueryHandler), "not a schedule", time.Now, logger)

		require.Error(t, job.Start())
	})

	t.Run("should run on its schedule until stopped", func(t *testing.T) {
		called := make(chan struct{}, 1)
		handler := new(MockOverdueOrdersQueryHandler)
		handler.On("Handle", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				select {
				case called <- struct{}{}:
				default:
				}
			}).
			Return([]queries.GetOverdueOrdersQueryResponse{}, nil)
		logger, _ := bufferLogger()
		job := jobs.NewOverdueOrdersJob(handler, "* * * * * *", time.Now, logger)

		require.NoError(t, job.Start())
		defer job.Stop()

		select {
		case <-called:
		case <-time.After(3 * time.Second):
			t.Fatal("scan did not run")
		}
	})
}

func TestJobManager(t *testing.T) {
	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		first, second := new(MockJob), new(MockJob)
		mock.InOrder(
			first.On("Start").Return(nil).Once(),
			second.On("Start").Return(nil).Once(),
			second.On("Stop").Once(),
			first.On("Stop").Once(),
		)
		manager := jobs.NewJobManager()
		manager.Register("first", first)
		manager.Register("second", second)

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		first, second := new(MockJob), new(MockJob)
		first.On("Start").Return(nil).Once()
		first.On("Stop").Once()
		second.On("Start").Return(errors.New("bad schedule")).Once()
		manager := jobs.NewJobManager()
		manager.Register("first", first)
		manager.Register("second", second)

		err := manager.StartAll()

		require.ErrorContains(t, err, "failed to start second job")
		first.AssertExpectations(t)
		second.AssertNotCalled(t, "Stop")
	})
}
