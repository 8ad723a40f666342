package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/invoice"
	"ordersync/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLister struct {
	mock.Mock
}

func (m *MockLister) Handle(ctx context.Context, query queries.ListUnsentShippedInvoicesQuery) ([]queries.InvoiceView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.InvoiceView)
	return views, args.Error(1)
}

type MockSentMarker struct {
	mock.Mock
}

func (m *MockSentMarker) Handle(ctx context.Context, cmd commands.MarkInvoiceSentCommand) bool {
	args := m.Called(ctx, cmd)
	return args.Bool(0)
}

func newView() queries.InvoiceView {
	orderID := kernel.NewUUID()
	return queries.InvoiceView{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		ObjectKey: invoice.ObjectKey(orderID, kernel.NewUUID()),
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSentReconcileJob_Run(t *testing.T) {
	t.Run("marks every candidate with its invoice as hint", func(t *testing.T) {
		first, second := newView(), newView()
		lister := new(MockLister)
		marker := new(MockSentMarker)
		lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListUnsentShippedInvoicesQuery) bool {
			return q.Limit() == sentReconcileBatchSize
		})).Return([]queries.InvoiceView{first, second}, nil).Once()
		marker.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkInvoiceSentCommand) bool {
			return cmd.OrderID().IsEqual(first.OrderID) && cmd.Hint() != nil && cmd.Hint().ID().IsEqual(first.ID)
		})).Return(true).Once()
		marker.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkInvoiceSentCommand) bool {
			return cmd.OrderID().IsEqual(second.OrderID)
		})).Return(false).Once()

		job := NewSentReconcileJob(lister, marker, "", slog.New(slog.DiscardHandler))

		assert.Equal(t, 1, job.Run(context.Background()))
		marker.AssertExpectations(t)
	})

	t.Run("listing failure ends the pass", func(t *testing.T) {
		lister := new(MockLister)
		marker := new(MockSentMarker)
		lister.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		job := NewSentReconcileJob(lister, marker, "", slog.New(slog.DiscardHandler))

		assert.Zero(t, job.Run(context.Background()))
		marker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("skips invalid rows", func(t *testing.T) {
		broken := newView()
		broken.ObjectKey = ""
		lister := new(MockLister)
		marker := new(MockSentMarker)
		lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.InvoiceView{broken}, nil).Once()

		job := NewSentReconcileJob(lister, marker, "", slog.New(slog.DiscardHandler))

		assert.Zero(t, job.Run(context.Background()))
		marker.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestSentReconcileJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewSentReconcileJob(new(MockLister), new(MockSentMarker), "not a cron", slog.New(slog.DiscardHandler))

	assert.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	lister := new(MockLister)
	lister.On("Handle", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	manager := NewJobManager(lister, new(MockSentMarker), "@every 1h", slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
