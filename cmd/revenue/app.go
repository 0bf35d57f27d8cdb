package main

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cansu12-ui/video-platformu-yonetimi/internal/config"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/domain"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/services"
	"github.com/cansu12-ui/video-platformu-yonetimi/internal/store"
	"github.com/spf13/cobra"
)

// app holds one wired-up instance of the system. Every command builds a
// fresh one, so invocations are independent of each other.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	rng       *rand.Rand
	store     *store.PaymentStore
	revenue   *services.RevenueService
	analytics *services.AnalyticsService
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	seed := cfg.Processing.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// The same source drives the demo generator and payout simulation, so a
	// fixed seed reproduces an entire run end to end.
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	st := store.NewPaymentStore(cfg.Store.Capacity, cfg.Store.AuditRetention, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		rng:       rng,
		store:     st,
		revenue:   services.NewRevenueService(st, cfg.Processing.SuccessProbability, rng, logger),
		analytics: services.NewAnalyticsService(st, logger),
	}, nil
}

// seededApp builds the app and fills the store with generated demo records.
func seededApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}

	n, err := cmd.Flags().GetInt("records")
	if err != nil {
		return nil, err
	}
	a.generateRecords(n)
	return a, nil
}

var (
	demoChannels = []string{
		"UC-kreatif-studyo",
		"UC-oyun-merkezi",
		"UC-yemek-atolyesi",
		"UC-tech-inceleme",
		"UC-muzik-arsivi",
		"UC-vlog-istanbul",
	}
	demoSponsors  = []string{"TechCorp", "GlobalSoft Yazilim", "MediaMax", "NovaBank", "x"}
	demoPlatforms = []string{"Google AdSense", "Facebook Ads", "TikTok Business", "YouTube Partner", "Billboard Network"}
	demoContracts = []string{"CNT-2026-0042", "SP-GLOBAL-7", "pending"}
	// Messy on purpose; currency normalization should clean these up.
	demoCurrencies = []string{"TRY", "TRY", "USD", "eur", "EUROS"}
)

// demoPeriods returns the previous and current settlement period, anchored
// to the first of the month so month-end dates do not skew the arithmetic.
func demoPeriods() (previous, current string) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format("2006-01"), first.Format("2006-01")
}

// generateRecords feeds the store with a random mix of the three payment
// kinds across the current and previous month. Inputs are intentionally
// dirty in places (unknown platforms, placeholder contracts, sloppy
// currency codes) to exercise normalization the way real ingests do.
func (a *app) generateRecords(n int) {
	previous, current := demoPeriods()
	periods := []string{previous, current}

	created := 0
	for i := 0; i < n; i++ {
		rec, err := a.randomRecord(periods)
		if err != nil {
			a.logger.Error("failed to build demo record", "error", err)
			continue
		}
		if a.revenue.CreatePaymentRecord(rec).Success {
			created++
		}
	}
	a.logger.Info("demo records generated", "requested", n, "created", created)
}

func (a *app) randomRecord(periods []string) (domain.Record, error) {
	channel := demoChannels[a.rng.IntN(len(demoChannels))]
	period := periods[a.rng.IntN(len(periods))]
	currency := demoCurrencies[a.rng.IntN(len(demoCurrencies))]

	switch a.rng.IntN(3) {
	case 0:
		impressions := 50_000 + a.rng.IntN(3_000_000)
		cpm := 1 + a.rng.Float64()*24
		platform := demoPlatforms[a.rng.IntN(len(demoPlatforms))]
		amount := domain.Round2(float64(impressions) / 1000 * cpm)
		return domain.NewAdRevenue(channel, amount, currency, period, impressions, cpm, platform)
	case 1:
		subscribers := 50 + a.rng.IntN(5000)
		amount := domain.Round2(float64(subscribers) * (5 + a.rng.Float64()*20))
		tiers := map[string]int{
			"basic":   subscribers / 2,
			"premium": subscribers / 4,
		}
		return domain.NewMembership(channel, amount, currency, period, subscribers, tiers)
	default:
		amount := domain.Round2(2000 + a.rng.Float64()*78000)
		sponsor := demoSponsors[a.rng.IntN(len(demoSponsors))]
		contract := demoContracts[a.rng.IntN(len(demoContracts))]
		return domain.NewSponsorship(channel, amount, currency, period, sponsor, contract)
	}
}
