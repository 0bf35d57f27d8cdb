package store_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStore_Save(t *testing.T) {
	t.Run("stores and retrieves a record", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")

		require.NoError(t, s.Save(rec))

		got, err := s.FindByID(rec.ID())
		require.NoError(t, err)
		assert.Equal(t, rec.ID(), got.ID())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("rejects nil record", func(t *testing.T) {
		s := newTestStore(t)

		err := s.Save(nil)

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	})

	t.Run("saving the same id again is an update", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		require.NoError(t, s.Save(rec))

		assert.Equal(t, 1, s.Len())
		logs := s.AuditLogs(0)
		require.NotEmpty(t, logs)
		assert.Equal(t, store.OpUpdate, logs[len(logs)-1].Op)
	})

	t.Run("re-saving a mutated record clears its stale status entry", func(t *testing.T) {
		s := newTestStore(t)
		first := adRecord(t, "UC-alpha", 100, "2026-03")
		second := adRecord(t, "UC-alpha", 200, "2026-03")
		require.NoError(t, s.Save(first))
		require.NoError(t, s.Save(second))

		require.NoError(t, first.SetStatus(domain.StatusCompleted))
		require.NoError(t, s.Save(first))

		pending := s.FindByStatus(domain.StatusPending)
		require.Len(t, pending, 1)
		assert.Equal(t, second.ID(), pending[0].ID())
		completed := s.FindByStatus(domain.StatusCompleted)
		require.Len(t, completed, 1)
		assert.Equal(t, first.ID(), completed[0].ID())

		byChannel := s.FindAllByChannel("UC-alpha")
		require.Len(t, byChannel, 2)
		assert.Equal(t, first.ID(), byChannel[0].ID())
		assert.Equal(t, second.ID(), byChannel[1].ID())
	})

	t.Run("records an INSERT audit entry", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")

		require.NoError(t, s.Save(rec))

		logs := s.AuditLogs(1)
		require.Len(t, logs, 1)
		assert.Equal(t, store.OpInsert, logs[0].Op)
		assert.Equal(t, rec.ID(), logs[0].RecordID)
	})
}

func TestPaymentStore_Capacity(t *testing.T) {
	t.Run("rejects inserts beyond capacity", func(t *testing.T) {
		s := store.NewPaymentStore(2, 0, testLogger())
		require.NoError(t, s.Save(adRecord(t, "UC-a", 100, "2026-03")))
		require.NoError(t, s.Save(adRecord(t, "UC-b", 200, "2026-03")))

		err := s.Save(adRecord(t, "UC-c", 300, "2026-03"))

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeCapacityExceeded))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("updates still succeed on a full store", func(t *testing.T) {
		s := store.NewPaymentStore(1, 0, testLogger())
		rec := adRecord(t, "UC-a", 100, "2026-03")
		require.NoError(t, s.Save(rec))

		require.NoError(t, rec.SetAmount(999))
		assert.NoError(t, s.Save(rec))
	})
}

func TestPaymentStore_WithRecord(t *testing.T) {
	t.Run("keeps the status index coherent", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		err := s.WithRecord(rec.ID(), func(r domain.Record) error {
			return r.SetStatus(domain.StatusCompleted)
		})

		require.NoError(t, err)
		assert.Empty(t, s.FindByStatus(domain.StatusPending))
		completed := s.FindByStatus(domain.StatusCompleted)
		require.Len(t, completed, 1)
		assert.Equal(t, rec.ID(), completed[0].ID())
	})

	t.Run("status change keeps channel and period order", func(t *testing.T) {
		s := newTestStore(t)
		first := adRecord(t, "UC-alpha", 50, "2026-03")
		second := adRecord(t, "UC-alpha", 900, "2026-03")
		require.NoError(t, s.Save(first))
		require.NoError(t, s.Save(second))

		require.NoError(t, s.WithRecord(first.ID(), func(r domain.Record) error {
			return r.SetStatus(domain.StatusOnHold)
		}))

		byChannel := s.FindAllByChannel("UC-alpha")
		require.Len(t, byChannel, 2)
		assert.Equal(t, first.ID(), byChannel[0].ID())
		assert.Equal(t, second.ID(), byChannel[1].ID())

		byPeriod := s.FindByPeriod("2026-03")
		require.Len(t, byPeriod, 2)
		assert.Equal(t, first.ID(), byPeriod[0].ID())

		held := s.FindByStatus(domain.StatusOnHold)
		require.Len(t, held, 1)
		assert.Equal(t, first.ID(), held[0].ID())
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		s := newTestStore(t)

		err := s.WithRecord("missing", func(domain.Record) error { return nil })

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeRecordNotFound))
	})

	t.Run("propagates the mutation error", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		err := s.WithRecord(rec.ID(), func(r domain.Record) error {
			return r.SetStatus("bogus")
		})

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
	})
}

func TestPaymentStore_Queries(t *testing.T) {
	s := newTestStore(t)
	first := adRecord(t, "UC-alpha", 100, "2026-02")
	second := membershipRecord(t, "UC-alpha", 200, "2026-03")
	third := sponsorshipRecord(t, "UC-beta", 300, "2026-03")
	for _, rec := range []domain.Record{first, second, third} {
		require.NoError(t, s.Save(rec))
	}

	t.Run("find all by channel preserves insertion order", func(t *testing.T) {
		got := s.FindAllByChannel("UC-alpha")

		require.Len(t, got, 2)
		assert.Equal(t, first.ID(), got[0].ID())
		assert.Equal(t, second.ID(), got[1].ID())
	})

	t.Run("find by channel with no records is empty", func(t *testing.T) {
		assert.Empty(t, s.FindAllByChannel("UC-nobody"))
	})

	t.Run("find by status", func(t *testing.T) {
		got := s.FindByStatus(domain.StatusPending)

		assert.Len(t, got, 3)
	})

	t.Run("find by period", func(t *testing.T) {
		got := s.FindByPeriod("2026-03")

		require.Len(t, got, 2)
		for _, rec := range got {
			assert.Equal(t, "2026-03", rec.Period())
		}
	})

	t.Run("find by amount range is inclusive", func(t *testing.T) {
		got := s.FindByAmountRange(100, 200)

		require.Len(t, got, 2)
		assert.Equal(t, 100.0, got[0].Amount())
		assert.Equal(t, 200.0, got[1].Amount())
	})

	t.Run("find by date range covers creation times", func(t *testing.T) {
		got := s.FindByDateRange(time.Now().Add(-time.Minute), time.Now())

		assert.Len(t, got, 3)
	})

	t.Run("find by date range outside the window is empty", func(t *testing.T) {
		got := s.FindByDateRange(time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

		assert.Empty(t, got)
	})

	t.Run("top payments orders by amount descending", func(t *testing.T) {
		got := s.TopPayments(2)

		require.Len(t, got, 2)
		assert.Equal(t, 300.0, got[0].Amount())
		assert.Equal(t, 200.0, got[1].Amount())
	})

	t.Run("top payments with non-positive limit is empty", func(t *testing.T) {
		assert.Empty(t, s.TopPayments(0))
	})

	t.Run("filter by kind", func(t *testing.T) {
		got := s.FilterByKind(domain.KindMembership)

		require.Len(t, got, 1)
		assert.Equal(t, second.ID(), got[0].ID())
	})
}

func TestPaymentStore_Delete(t *testing.T) {
	t.Run("removes the record from storage and indices", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		assert.True(t, s.Delete(rec.ID()))

		assert.Equal(t, 0, s.Len())
		_, err := s.FindByID(rec.ID())
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeRecordNotFound))
		assert.Empty(t, s.FindAllByChannel("UC-alpha"))
		assert.Empty(t, s.FindByStatus(domain.StatusPending))
		assert.Empty(t, s.FindByPeriod("2026-03"))
	})

	t.Run("deleting twice reports false", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		require.True(t, s.Delete(rec.ID()))
		assert.False(t, s.Delete(rec.ID()))
	})
}

func TestPaymentStore_Aggregates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(adRecord(t, "UC-a", 100.10, "2026-03")))
	require.NoError(t, s.Save(adRecord(t, "UC-b", 200.20, "2026-03")))

	t.Run("total volume sums amounts", func(t *testing.T) {
		assert.InDelta(t, 300.30, s.TotalVolume(), 0.001)
	})

	t.Run("status distribution covers every status", func(t *testing.T) {
		dist := s.StatusDistribution()

		assert.Len(t, dist, len(domain.ValidStatuses()))
		assert.Equal(t, 2, dist[domain.StatusPending])
		assert.Equal(t, 0, dist[domain.StatusFailed])
	})
}

func TestPaymentStore_AuditLogs(t *testing.T) {
	t.Run("returns the most recent entries oldest first", func(t *testing.T) {
		s := newTestStore(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.Save(adRecord(t, fmt.Sprintf("UC-%d", i), 100, "2026-03")))
		}

		logs := s.AuditLogs(2)

		require.Len(t, logs, 2)
		assert.False(t, logs[0].Time.After(logs[1].Time))
	})

	t.Run("drops the oldest entries past retention", func(t *testing.T) {
		s := store.NewPaymentStore(0, 3, testLogger())
		for i := 0; i < 5; i++ {
			require.NoError(t, s.Save(adRecord(t, fmt.Sprintf("UC-%d", i), 100, "2026-03")))
		}

		logs := s.AuditLogs(0)

		assert.Len(t, logs, 3)
	})

	t.Run("reads are audited", func(t *testing.T) {
		s := newTestStore(t)
		rec := adRecord(t, "UC-alpha", 1500, "2026-03")
		require.NoError(t, s.Save(rec))

		_, err := s.FindByID(rec.ID())
		require.NoError(t, err)

		logs := s.AuditLogs(1)
		require.Len(t, logs, 1)
		assert.Equal(t, store.OpRead, logs[0].Op)
	})
}

func TestPaymentStore_Info(t *testing.T) {
	s := store.NewPaymentStore(500, 0, testLogger())

	info := s.Info()

	assert.Equal(t, "in-memory-map", info.Engine)
	assert.Equal(t, 500, info.MaxCapacity)
	assert.False(t, info.SupportsTransactions)
	assert.True(t, info.ThreadSafe)
}

func TestPaymentStore_ValidateCurrencyCode(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.ValidateCurrencyCode("TRY"))
	assert.True(t, s.ValidateCurrencyCode("usd"))
	assert.False(t, s.ValidateCurrencyCode("XXX"))
}

func TestPaymentStore_ConcurrentAccess(t *testing.T) {
	s := newTestStore(t)
	rec := adRecord(t, "UC-alpha", 1500, "2026-03")
	require.NoError(t, s.Save(rec))

	pending := make([]domain.Record, 20)
	for i := range pending {
		pending[i] = adRecord(t, fmt.Sprintf("UC-w-%d", i), 100, "2026-03")
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(r domain.Record) {
			defer wg.Done()
			_ = s.Save(r)
		}(pending[i])
		go func() {
			defer wg.Done()
			_ = s.FindAllByChannel("UC-alpha")
			_, _ = s.FindByID(rec.ID())
			_ = s.StatusDistribution()
		}()
	}
	wg.Wait()

	assert.Equal(t, 21, s.Len())
}

func newTestStore(t *testing.T) *store.PaymentStore {
	t.Helper()
	return store.NewPaymentStore(0, 0, testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adRecord(t *testing.T, channelID string, amount float64, period string) *domain.AdRevenue {
	t.Helper()
	rec, err := domain.NewAdRevenue(channelID, amount, "TRY", period, 10000, 5.0, "Google AdSense")
	require.NoError(t, err)
	return rec
}

func membershipRecord(t *testing.T, channelID string, amount float64, period string) *domain.Membership {
	t.Helper()
	rec, err := domain.NewMembership(channelID, amount, "TRY", period, 100, map[string]int{"basic": 100})
	require.NoError(t, err)
	return rec
}

func sponsorshipRecord(t *testing.T, channelID string, amount float64, period string) *domain.Sponsorship {
	t.Helper()
	rec, err := domain.NewSponsorship(channelID, amount, "TRY", period, "TechCorp", "CNT-001")
	require.NoError(t, err)
	return rec
}
