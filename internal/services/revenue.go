package services

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/store"
	"github.com/shopspring/decimal"
)

const (
	DefaultSuccessProbability  = 0.85
	DefaultLowPaymentThreshold = 100.0

	fraudRiskThreshold = 0.98
)

// Report summarizes a channel's income for one settlement period.
type Report struct {
	ChannelID        string                  `json:"channel_id"`
	Period           string                  `json:"period"`
	GrossIncome      float64                 `json:"gross_income"`
	EstimatedTax     float64                 `json:"estimated_tax"`
	NetProjection    float64                 `json:"net_projection"`
	Breakdown        map[domain.Kind]float64 `json:"breakdown"`
	TransactionCount int                     `json:"transaction_count"`
}

// RevenueService owns payment record lifecycle operations. The random
// source drives payout simulation and fraud screening; injecting a seeded
// one makes both deterministic.
type RevenueService struct {
	store              *store.PaymentStore
	successProbability float64
	rng                *rand.Rand
	logger             *slog.Logger
}

func NewRevenueService(st *store.PaymentStore, successProbability float64, rng *rand.Rand, logger *slog.Logger) *RevenueService {
	if successProbability <= 0 || successProbability > 1 {
		successProbability = DefaultSuccessProbability
	}
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RevenueService{
		store:              st,
		successProbability: successProbability,
		rng:                rng,
		logger:             logger,
	}
}

// CreatePaymentRecord admits a record into the store. Records that cannot
// be paid out, settle in an unsupported currency or do not fit the store
// are rejected.
func (s *RevenueService) CreatePaymentRecord(rec domain.Record) Result {
	if rec == nil {
		return failureResult("", "no record provided")
	}
	if !rec.IsPayable() {
		return failureResult(rec.ID(), "record is not payable")
	}
	if !s.store.ValidateCurrencyCode(rec.Currency()) {
		err := domain.NewUnsupportedCurrencyError(rec.Currency())
		s.logger.Warn("payment record rejected", "record_id", rec.ID(), "error", err)
		return failureResult(rec.ID(), err.Error())
	}
	if err := s.store.Save(rec); err != nil {
		s.logger.Error("failed to save payment record", "record_id", rec.ID(), "error", err)
		return failureResult(rec.ID(), err.Error())
	}
	s.logger.Info("payment record created", "record_id", rec.ID(), "channel_id", rec.ChannelID(), "kind", rec.Kind())
	return successResult(rec.ID(), "payment record created")
}

// SimulatePaymentProcessing runs one payout attempt. High-value payments
// are parked in processing for manual review instead of being attempted;
// everything else succeeds with the configured probability.
func (s *RevenueService) SimulatePaymentProcessing(id string) Result {
	rec, err := s.store.FindByID(id)
	if err != nil {
		return failureResult(id, err.Error())
	}
	if rec.Status() == domain.StatusCompleted {
		return failureResult(id, "payment already completed")
	}

	if rec.Amount() > domain.HighValueAmount && rec.Status() != domain.StatusProcessing {
		if err := s.setStatus(id, domain.StatusProcessing); err != nil {
			return failureResult(id, err.Error())
		}
		s.logger.Info("high-value payment routed to manual review",
			"record_id", id, "amount", rec.Amount(), "currency", rec.Currency())
		return successResult(id, "queued for manual review")
	}

	if s.rng.Float64() < s.successProbability {
		if err := s.setStatus(id, domain.StatusCompleted); err != nil {
			return failureResult(id, err.Error())
		}
		s.logger.Info("payout completed", "record_id", id, "amount", rec.Amount())
		return successResult(id, "payment completed")
	}

	if err := s.setStatus(id, domain.StatusFailed); err != nil {
		return failureResult(id, err.Error())
	}
	s.logger.Warn("payout rejected by simulated bank", "record_id", id, "amount", rec.Amount())
	return failureResult(id, "payment rejected by bank")
}

// GeneratePeriodicReport aggregates one channel's records for a period.
// Every kind appears in the breakdown, with zero for absent streams, and
// gross income is the sum of the rounded breakdown values.
func (s *RevenueService) GeneratePeriodicReport(channelID, period string) Report {
	report := Report{
		ChannelID: channelID,
		Period:    period,
		Breakdown: make(map[domain.Kind]float64, len(domain.Kinds())),
	}

	sums := make(map[domain.Kind]decimal.Decimal, len(domain.Kinds()))
	tax := decimal.Zero
	for _, rec := range s.store.FindAllByChannel(channelID) {
		if rec.Period() != period {
			continue
		}
		sums[rec.Kind()] = sums[rec.Kind()].Add(decimal.NewFromFloat(rec.Amount()))
		tax = tax.Add(decimal.NewFromFloat(rec.ComputeTax()))
		report.TransactionCount++
	}
	for _, k := range domain.Kinds() {
		v, _ := sums[k].Round(2).Float64()
		report.Breakdown[k] = v
		report.GrossIncome += v
	}
	report.EstimatedTax, _ = tax.Round(2).Float64()
	report.NetProjection = domain.Round2(report.GrossIncome - report.EstimatedTax)

	s.logger.Info("periodic report generated",
		"channel_id", channelID, "period", period, "transactions", report.TransactionCount)
	return report
}

// HoldLowPayments parks pending payments at or below the threshold so they
// accrue until worth paying out. Returns how many were held.
func (s *RevenueService) HoldLowPayments(threshold float64) int {
	if threshold <= 0 {
		threshold = DefaultLowPaymentThreshold
	}
	count := 0
	for _, rec := range s.store.FindByStatus(domain.StatusPending) {
		if rec.Amount() <= 0 || rec.Amount() > threshold {
			continue
		}
		if err := s.setStatus(rec.ID(), domain.StatusOnHold); err != nil {
			s.logger.Error("failed to hold payment", "record_id", rec.ID(), "error", err)
			continue
		}
		count++
	}
	s.logger.Info("low payments held", "threshold", threshold, "count", count)
	return count
}

// FilterPaymentsByStatus returns one channel's records in a given status.
func (s *RevenueService) FilterPaymentsByStatus(channelID string, status domain.Status) []domain.Record {
	var out []domain.Record
	for _, rec := range s.store.FindAllByChannel(channelID) {
		if rec.Status() == status {
			out = append(out, rec)
		}
	}
	return out
}

// BulkStatusUpdate moves every listed record to the new status, skipping
// unknown ids. Returns how many records were updated.
func (s *RevenueService) BulkStatusUpdate(ids []string, status domain.Status) int {
	if !status.Valid() {
		s.logger.Warn("bulk update rejected", "status", status)
		return 0
	}
	count := 0
	for _, id := range ids {
		if err := s.setStatus(id, status); err != nil {
			s.logger.Warn("bulk update skipped record", "record_id", id, "error", err)
			continue
		}
		count++
	}
	s.logger.Info("bulk status update applied", "status", status, "updated", count, "requested", len(ids))
	return count
}

// TotalTaxLiability sums the estimated tax across the given records.
func (s *RevenueService) TotalTaxLiability(records []domain.Record) float64 {
	var total float64
	for _, rec := range records {
		total += rec.ComputeTax()
	}
	return domain.Round2(total)
}

// ScreenAdTraffic runs a fraud check against an ad revenue record. Flagged
// records are put on hold pending review.
func (s *RevenueService) ScreenAdTraffic(id string) Result {
	rec, err := s.store.FindByID(id)
	if err != nil {
		return failureResult(id, err.Error())
	}
	ad, ok := rec.(*domain.AdRevenue)
	if !ok {
		return failureResult(id, "record is not ad revenue")
	}

	risk := s.rng.Float64()
	if risk > fraudRiskThreshold {
		if err := s.setStatus(id, domain.StatusOnHold); err != nil {
			return failureResult(id, err.Error())
		}
		s.logger.Warn("ad traffic flagged for fraud review",
			"record_id", id, "platform", ad.Platform(), "risk", risk)
		return failureResult(id, "traffic flagged for fraud review")
	}
	return successResult(id, "traffic screening passed")
}

func (s *RevenueService) setStatus(id string, status domain.Status) error {
	return s.store.WithRecord(id, func(r domain.Record) error {
		return r.SetStatus(status)
	})
}
