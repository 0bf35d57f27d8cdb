package domain

import (
	"fmt"
	"slices"
)

const (
	invalidTrafficRate = 0.02
	bonusImpressions   = 1_000_000
	bonusRate          = 0.05
	adTaxRate          = 0.18
	clickThroughRate   = 0.015

	DefaultAdPlatform = "Google AdSense"
)

// AdPlatforms is the whitelist of ad networks revenue can be reported from.
var AdPlatforms = []string{
	"Google AdSense",
	"Facebook Ads",
	"Unity Ads",
	"TikTok Business",
	"YouTube Partner",
}

// AdMetrics is the performance snapshot cached on an ad revenue record,
// refreshed whenever impressions change.
type AdMetrics struct {
	TotalImpressions int     `json:"total_impressions"`
	ValidImpressions int     `json:"valid_impressions"`
	EstimatedClicks  int     `json:"estimated_clicks"`
	AverageCPM       float64 `json:"average_cpm"`
	Platform         string  `json:"platform"`
	BonusApplied     bool    `json:"bonus_applied"`
}

// AdRevenue is programmatic advertising income for a channel and period.
type AdRevenue struct {
	PaymentBase
	impressions int
	cpmRate     float64
	platform    string
	metrics     AdMetrics
}

func NewAdRevenue(channelID string, amount float64, currency, period string, impressions int, cpmRate float64, platform string) (*AdRevenue, error) {
	base, err := newPaymentBase(channelID, amount, currency, period)
	if err != nil {
		return nil, err
	}
	if impressions < 0 {
		return nil, NewValidationError("impressions cannot be negative")
	}
	if cpmRate < 0 {
		return nil, NewValidationError("cpm rate cannot be negative")
	}

	a := &AdRevenue{
		PaymentBase: base,
		impressions: impressions,
		cpmRate:     cpmRate,
		platform:    platform,
	}
	if cpmRate > 1000 {
		a.addLog(fmt.Sprintf("unusually high cpm rate %.2f", cpmRate))
	}
	if !slices.Contains(AdPlatforms, platform) {
		a.platform = DefaultAdPlatform
		a.addLog(fmt.Sprintf("unknown platform %q replaced with %s", platform, DefaultAdPlatform))
	}
	a.metrics = a.buildMetrics()
	return a, nil
}

func (a *AdRevenue) Kind() Kind { return KindAdRevenue }

func (a *AdRevenue) Impressions() int { return a.impressions }
func (a *AdRevenue) CPMRate() float64 { return a.cpmRate }
func (a *AdRevenue) Platform() string { return a.platform }

// Metrics returns the cached performance snapshot.
func (a *AdRevenue) Metrics() AdMetrics { return a.metrics }

// NetEarnings computes impression-based earnings after the invalid traffic
// deduction, plus the volume bonus above one million impressions.
func (a *AdRevenue) NetEarnings() float64 {
	raw := float64(a.impressions) / 1000 * a.cpmRate
	deduction := raw * invalidTrafficRate
	var bonus float64
	if a.impressions > bonusImpressions {
		bonus = raw * bonusRate
	}
	return Round2(raw - deduction + bonus)
}

func (a *AdRevenue) ComputeTax() float64 {
	return Round2(a.NetEarnings() * adTaxRate)
}

// UpdateImpressions replaces the impression count, re-prices the record from
// its net earnings and refreshes the cached metrics.
func (a *AdRevenue) UpdateImpressions(n int) error {
	if n < 0 {
		return NewValidationError("impressions cannot be negative")
	}
	prev := a.impressions
	a.impressions = n
	if err := a.SetAmount(a.NetEarnings()); err != nil {
		return err
	}
	a.metrics = a.buildMetrics()
	a.addLog(fmt.Sprintf("impressions updated from %d to %d", prev, n))
	return nil
}

func (a *AdRevenue) Details() Details {
	d := a.baseDetails(KindAdRevenue, a.ComputeTax())
	m := a.metrics
	d.Ad = &m
	return d
}

// buildMetrics truncates fractional counts. Estimated clicks come from total
// impressions, not the valid subset.
func (a *AdRevenue) buildMetrics() AdMetrics {
	return AdMetrics{
		TotalImpressions: a.impressions,
		ValidImpressions: int(float64(a.impressions) * (1 - invalidTrafficRate)),
		EstimatedClicks:  int(float64(a.impressions) * clickThroughRate),
		AverageCPM:       a.cpmRate,
		Platform:         a.platform,
		BonusApplied:     a.impressions > bonusImpressions,
	}
}
