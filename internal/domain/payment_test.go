package domain_test

import (
	"testing"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("creates record with generated id and defaults", func(t *testing.T) {
		rec := createAdRevenue(t)

		assert.NotEmpty(t, rec.ID())
		assert.Equal(t, "UC-tech-channel", rec.ChannelID())
		assert.Equal(t, "TRY", rec.Currency())
		assert.Equal(t, "2026-03", rec.Period())
		assert.Equal(t, domain.StatusPending, rec.Status())
		assert.NotZero(t, rec.CreatedAt())
		assert.Equal(t, rec.CreatedAt(), rec.UpdatedAt())
	})

	t.Run("records creation in the audit trail", func(t *testing.T) {
		rec := createAdRevenue(t)

		trail := rec.AuditTrail()
		require.NotEmpty(t, trail)
		assert.Contains(t, trail[0], "payment record created")
	})

	t.Run("generates unique ids", func(t *testing.T) {
		first := createAdRevenue(t)
		second := createAdRevenue(t)

		assert.NotEqual(t, first.ID(), second.ID())
	})

	t.Run("rejects short channel id", func(t *testing.T) {
		_, err := domain.NewAdRevenue("ab", 100, "TRY", "2026-03", 1000, 2.0, "Google AdSense")

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	})

	t.Run("trims channel id before validating", func(t *testing.T) {
		rec, err := domain.NewAdRevenue("  UC-abc  ", 100, "TRY", "2026-03", 1000, 2.0, "Google AdSense")

		require.NoError(t, err)
		assert.Equal(t, "UC-abc", rec.ChannelID())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := domain.NewAdRevenue("UC-abc", -1, "TRY", "2026-03", 1000, 2.0, "Google AdSense")

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
	})
}

func TestRecord_CurrencyNormalization(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		warned bool
	}{
		{"keeps valid code", "USD", "USD", false},
		{"uppercases valid code", "usd", "USD", false},
		{"trims surrounding spaces", " eur ", "EUR", false},
		{"truncates long code", "EUROS", "EUR", true},
		{"defaults empty code", "", "TRY", true},
		{"defaults numeric code", "123", "TRY", true},
		{"defaults short code", "US", "TRY", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := domain.NewAdRevenue("UC-abc", 100, tt.input, "2026-03", 1000, 2.0, "Google AdSense")

			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Currency())
			if tt.warned {
				assert.Contains(t, lastLog(t, rec), "currency")
			}
		})
	}
}

func TestRecord_PeriodNormalization(t *testing.T) {
	t.Run("keeps well-formed period", func(t *testing.T) {
		rec, err := domain.NewAdRevenue("UC-abc", 100, "TRY", "2025-12", 1000, 2.0, "Google AdSense")

		require.NoError(t, err)
		assert.Equal(t, "2025-12", rec.Period())
	})

	t.Run("replaces malformed period with current month", func(t *testing.T) {
		for _, bad := range []string{"2026/03", "2026-13", "2026-3", "March 2026", ""} {
			rec, err := domain.NewAdRevenue("UC-abc", 100, "TRY", bad, 1000, 2.0, "Google AdSense")

			require.NoError(t, err)
			assert.Equal(t, time.Now().Format("2006-01"), rec.Period())
			assert.Contains(t, lastLog(t, rec), "period")
		}
	})
}

func TestRecord_PriorityLevels(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		priority int
	}{
		{"tiny amounts are priority 4", 500, 4},
		{"boundary 1000 stays priority 4", 1000, 4},
		{"above 1000 is priority 3", 1000.01, 3},
		{"above 10000 is priority 2", 25000, 2},
		{"boundary 100000 stays priority 2", 100000, 2},
		{"above 100000 is priority 1", 100000.01, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := domain.NewAdRevenue("UC-abc", tt.amount, "TRY", "2026-03", 1000, 2.0, "Google AdSense")

			require.NoError(t, err)
			assert.Equal(t, tt.priority, rec.Priority())
		})
	}
}

func TestRecord_SetAmount(t *testing.T) {
	t.Run("updates amount and audit trail", func(t *testing.T) {
		rec := createAdRevenue(t)
		before := len(rec.AuditTrail())

		err := rec.SetAmount(2500)

		require.NoError(t, err)
		assert.Equal(t, 2500.0, rec.Amount())
		assert.Equal(t, 3, rec.Priority())
		assert.Len(t, rec.AuditTrail(), before+1)
	})

	t.Run("escalates high-value amounts to priority 1", func(t *testing.T) {
		rec := createAdRevenue(t)

		err := rec.SetAmount(50000.01)

		require.NoError(t, err)
		assert.Equal(t, 1, rec.Priority())
	})

	t.Run("high-value override beats the regular bands", func(t *testing.T) {
		rec := createAdRevenue(t)
		require.NoError(t, rec.SetAmount(60000))

		// 60000 would be priority 2 by amount alone
		assert.Equal(t, 1, rec.Priority())
	})

	t.Run("rejects negative amount without side effects", func(t *testing.T) {
		rec := createAdRevenue(t)
		before := rec.AuditTrail()

		err := rec.SetAmount(-5)

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeValidationFailed))
		assert.Equal(t, 1500.0, rec.Amount())
		assert.Equal(t, before, rec.AuditTrail())
	})
}

func TestRecord_SetStatus(t *testing.T) {
	t.Run("accepts every member of the status enum", func(t *testing.T) {
		for _, s := range domain.ValidStatuses() {
			rec := createAdRevenue(t)

			err := rec.SetStatus(s)

			require.NoError(t, err)
			assert.Equal(t, s, rec.Status())
		}
	})

	t.Run("records the change in the audit trail", func(t *testing.T) {
		rec := createAdRevenue(t)

		require.NoError(t, rec.SetStatus(domain.StatusCompleted))

		assert.Contains(t, lastLog(t, rec), "pending")
		assert.Contains(t, lastLog(t, rec), "completed")
	})

	t.Run("rejects unknown status without touching state", func(t *testing.T) {
		rec := createAdRevenue(t)
		before := rec.AuditTrail()

		err := rec.SetStatus("archived")

		require.Error(t, err)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidTransition))
		assert.Equal(t, domain.StatusPending, rec.Status())
		assert.Equal(t, before, rec.AuditTrail())
	})
}

func TestRecord_IsPayable(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.Status
		amount  float64
		payable bool
	}{
		{"pending with positive amount", domain.StatusPending, 1500, true},
		{"on hold with positive amount", domain.StatusOnHold, 1500, true},
		{"pending with zero amount", domain.StatusPending, 0, false},
		{"completed is not payable", domain.StatusCompleted, 1500, false},
		{"failed is not payable", domain.StatusFailed, 1500, false},
		{"cancelled is not payable", domain.StatusCancelled, 1500, false},
		{"refunded is not payable", domain.StatusRefunded, 1500, false},
		{"processing is not payable", domain.StatusProcessing, 1500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := domain.NewAdRevenue("UC-abc", tt.amount, "TRY", "2026-03", 1000, 2.0, "Google AdSense")
			require.NoError(t, err)
			require.NoError(t, rec.SetStatus(tt.status))

			assert.Equal(t, tt.payable, rec.IsPayable())
		})
	}
}

func TestRecord_AuditTrailIsACopy(t *testing.T) {
	rec := createAdRevenue(t)

	trail := rec.AuditTrail()
	trail[0] = "tampered"

	assert.NotEqual(t, "tampered", rec.AuditTrail()[0])
}

func createAdRevenue(t *testing.T) *domain.AdRevenue {
	t.Helper()
	rec, err := domain.NewAdRevenue("UC-tech-channel", 1500, "TRY", "2026-03", 100000, 15.0, "Google AdSense")
	require.NoError(t, err)
	return rec
}

func lastLog(t *testing.T, rec domain.Record) string {
	t.Helper()
	trail := rec.AuditTrail()
	require.NotEmpty(t, trail)
	return trail[len(trail)-1]
}
