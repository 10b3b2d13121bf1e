package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

func backfillSettings() *storefront.Settings {
	s := testSettings()
	s.SyncOldOrders = true
	s.OldOrdersFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.OldOrdersTo = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return s
}

func backfillOrder(id int64) storefront.Order {
	order := simpleOrder()
	order.ID = id
	return *order
}

func TestBackfillServiceSyncOldOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrSyncDisabled when the flag is off", func(t *testing.T) {
		f := newIntakeFixture()
		source := new(MockOrderSource)
		svc := NewBackfillService(f.settings, source, f.service, f.syncLog)

		f.settings.On("Get", mock.Anything).Return(testSettings(), nil)

		err := svc.SyncOldOrders(ctx)

		assert.True(t, errors.Is(err, storefront.ErrSyncDisabled))
		source.AssertNotCalled(t, "FetchOrders", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pages through the range and clears the flag", func(t *testing.T) {
		f := newIntakeFixture()
		source := new(MockOrderSource)
		svc := NewBackfillService(f.settings, source, f.service, f.syncLog)

		settings := backfillSettings()
		pager := &fakePager{pages: [][]storefront.Order{
			{backfillOrder(1001), backfillOrder(1002)},
			{backfillOrder(1003)},
		}}

		f.settings.On("Get", mock.Anything).Return(settings, nil)
		source.On("FetchOrders", mock.Anything, settings.OldOrdersFrom, settings.OldOrdersTo).
			Return(pager, nil)
		// Every order is already synced so intake takes the duplicate path.
		f.orders.On("ExistsByExternalID", mock.Anything, mock.Anything).Return(true, nil)
		f.settings.On("Save", mock.Anything, mock.AnythingOfType("*storefront.Settings")).
			Run(func(args mock.Arguments) {
				saved := args.Get(1).(*storefront.Settings)
				assert.False(t, saved.SyncOldOrders)
			}).
			Return(nil)
		f.syncLog.On("Log", mock.Anything, mock.Anything).Return(nil)

		err := svc.SyncOldOrders(ctx)

		require.NoError(t, err)

		// One Queued entry and one intake outcome per order, then the
		// terminal backfill entry.
		entries := f.syncLog.entries()
		require.Len(t, entries, 7)

		var queued, invalid int
		for _, entry := range entries[:6] {
			switch entry.Status {
			case storefront.LogStatusQueued:
				queued++
				assert.Equal(t, MethodOrderCreate, entry.Method)
				assert.NotEmpty(t, entry.RequestID)
				assert.NotEmpty(t, entry.RequestData)
			case storefront.LogStatusInvalid:
				invalid++
			}
		}
		assert.Equal(t, 3, queued)
		assert.Equal(t, 3, invalid)

		last := entries[6]
		assert.Equal(t, MethodOrderBackfill, last.Method)
		assert.Equal(t, storefront.LogStatusSuccess, last.Status)
		f.settings.AssertExpectations(t)
	})

	t.Run("queued and intake entries share the request id", func(t *testing.T) {
		f := newIntakeFixture()
		source := new(MockOrderSource)
		svc := NewBackfillService(f.settings, source, f.service, f.syncLog)

		settings := backfillSettings()
		pager := &fakePager{pages: [][]storefront.Order{{backfillOrder(1001)}}}

		f.settings.On("Get", mock.Anything).Return(settings, nil)
		source.On("FetchOrders", mock.Anything, settings.OldOrdersFrom, settings.OldOrdersTo).
			Return(pager, nil)
		f.orders.On("ExistsByExternalID", mock.Anything, "1001").Return(true, nil)
		f.settings.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.syncLog.On("Log", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, svc.SyncOldOrders(ctx))

		entries := f.syncLog.entries()
		require.Len(t, entries, 3)
		assert.Equal(t, storefront.LogStatusQueued, entries[0].Status)
		assert.Equal(t, storefront.LogStatusInvalid, entries[1].Status)
		assert.Equal(t, entries[0].RequestID, entries[1].RequestID)
	})

	t.Run("fetch failure is logged and returned", func(t *testing.T) {
		f := newIntakeFixture()
		source := new(MockOrderSource)
		svc := NewBackfillService(f.settings, source, f.service, f.syncLog)

		settings := backfillSettings()
		f.settings.On("Get", mock.Anything).Return(settings, nil)
		source.On("FetchOrders", mock.Anything, settings.OldOrdersFrom, settings.OldOrdersTo).
			Return(nil, errors.New("api unreachable"))
		f.syncLog.On("Log", mock.Anything, mock.Anything).Return(nil)

		err := svc.SyncOldOrders(ctx)

		require.Error(t, err)
		entries := f.syncLog.entries()
		require.Len(t, entries, 1)
		assert.Equal(t, MethodOrderBackfill, entries[0].Method)
		assert.Equal(t, storefront.LogStatusError, entries[0].Status)
		assert.Contains(t, entries[0].Exception, "api unreachable")
		f.settings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("page failure aborts mid-run without clearing the flag", func(t *testing.T) {
		f := newIntakeFixture()
		source := new(MockOrderSource)
		svc := NewBackfillService(f.settings, source, f.service, f.syncLog)

		settings := backfillSettings()
		f.settings.On("Get", mock.Anything).Return(settings, nil)
		source.On("FetchOrders", mock.Anything, settings.OldOrdersFrom, settings.OldOrdersTo).
			Return(failingPager{}, nil)
		f.syncLog.On("Log", mock.Anything, mock.Anything).Return(nil)

		err := svc.SyncOldOrders(ctx)

		require.Error(t, err)
		assert.True(t, settings.SyncOldOrders)
		f.settings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

type failingPager struct{}

func (failingPager) NextPage(ctx context.Context) ([]storefront.Order, bool, error) {
	return nil, false, errors.New("rate limited")
}
