package services

import (
	"log/slog"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/store"
)

const (
	HealthStatusHealthy = "Healthy"
	HealthStatusWarning = "Warning"

	// failure share, in percent, above which the system is flagged
	healthFailureThreshold = 5.0

	recentLogCount = 5
)

// PeriodComparison relates two period reports. HasBaseline is false when
// the previous period earned nothing, in which case no growth figure can
// be computed.
type PeriodComparison struct {
	PreviousGross float64 `json:"previous_gross"`
	CurrentGross  float64 `json:"current_gross"`
	GrowthPercent float64 `json:"growth_percent"`
	HasBaseline   bool    `json:"has_baseline"`
}

// HealthReport is a point-in-time view of payment processing health.
type HealthReport struct {
	Status       string             `json:"status"`
	FailureRate  float64            `json:"failure_rate"`
	TotalRecords int                `json:"total_records"`
	TotalVolume  float64            `json:"total_volume"`
	RecentLogs   []store.AuditEntry `json:"recent_logs"`
}

// Performer is one entry of the top payments leaderboard.
type Performer struct {
	ChannelID string      `json:"channel_id"`
	Amount    float64     `json:"amount"`
	Currency  string      `json:"currency"`
	Kind      domain.Kind `json:"kind"`
}

// AnalyticsService answers read-only questions about the stored records.
type AnalyticsService struct {
	store  *store.PaymentStore
	logger *slog.Logger
}

func NewAnalyticsService(st *store.PaymentStore, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{store: st, logger: logger}
}

// ComparePeriods computes period-over-period growth from two reports.
func (s *AnalyticsService) ComparePeriods(previous, current Report) PeriodComparison {
	comparison := PeriodComparison{
		PreviousGross: previous.GrossIncome,
		CurrentGross:  current.GrossIncome,
	}
	if previous.GrossIncome <= 0 {
		s.logger.Info("no baseline for period comparison", "period", previous.Period)
		return comparison
	}
	comparison.HasBaseline = true
	comparison.GrowthPercent = domain.Round2(
		(current.GrossIncome - previous.GrossIncome) / previous.GrossIncome * 100)
	return comparison
}

// AnalyzeSystemHealth derives a health verdict from the failure share of
// all stored records.
func (s *AnalyticsService) AnalyzeSystemHealth() HealthReport {
	dist := s.store.StatusDistribution()
	total := 0
	for _, n := range dist {
		total += n
	}

	var rate float64
	if total > 0 {
		rate = domain.Round2(float64(dist[domain.StatusFailed]) / float64(total) * 100)
	}
	status := HealthStatusHealthy
	if rate >= healthFailureThreshold {
		status = HealthStatusWarning
	}

	report := HealthReport{
		Status:       status,
		FailureRate:  rate,
		TotalRecords: total,
		TotalVolume:  s.store.TotalVolume(),
		RecentLogs:   s.store.AuditLogs(recentLogCount),
	}
	s.logger.Info("system health analyzed", "status", status, "failure_rate", rate, "records", total)
	return report
}

// TopPerformers lists the highest-value payments, largest first.
func (s *AnalyticsService) TopPerformers(limit int) []Performer {
	records := s.store.TopPayments(limit)
	out := make([]Performer, 0, len(records))
	for _, rec := range records {
		out = append(out, Performer{
			ChannelID: rec.ChannelID(),
			Amount:    rec.Amount(),
			Currency:  rec.Currency(),
			Kind:      rec.Kind(),
		})
	}
	return out
}
