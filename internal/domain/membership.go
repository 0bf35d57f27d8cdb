package domain

import (
	"fmt"
	"maps"
)

const (
	platformFeeRate   = 0.30
	refundReserveRate = 0.05
	withholdingRate   = 0.20

	DefaultChurnRate = 0.05

	fallbackTier = "Other"
)

// MembershipStats is the subscriber snapshot exposed through Details.
type MembershipStats struct {
	TotalSubscribers int            `json:"total_subscribers"`
	Tiers            map[string]int `json:"tiers"`
	ARPU             float64        `json:"arpu"`
}

// Membership is recurring subscriber income for a channel and period.
type Membership struct {
	PaymentBase
	totalSubscribers int
	tierBreakdown    map[string]int
}

func NewMembership(channelID string, amount float64, currency, period string, totalSubscribers int, tierBreakdown map[string]int) (*Membership, error) {
	base, err := newPaymentBase(channelID, amount, currency, period)
	if err != nil {
		return nil, err
	}
	if totalSubscribers < 0 {
		return nil, NewValidationError("total subscribers cannot be negative")
	}

	m := &Membership{
		PaymentBase:      base,
		totalSubscribers: totalSubscribers,
		tierBreakdown:    make(map[string]int, len(tierBreakdown)),
	}
	maps.Copy(m.tierBreakdown, tierBreakdown)
	m.reconcileTiers()
	return m, nil
}

// reconcileTiers makes the tier counts account for every subscriber. A
// shortfall is booked under the fallback tier; a surplus is only warned
// about, since tiers may legitimately overlap during plan migrations.
func (m *Membership) reconcileTiers() {
	sum := 0
	for _, n := range m.tierBreakdown {
		sum += n
	}
	switch {
	case sum < m.totalSubscribers:
		missing := m.totalSubscribers - sum
		m.tierBreakdown[fallbackTier] += missing
		m.addLog(fmt.Sprintf("%d subscribers without a tier booked under %s", missing, fallbackTier))
	case sum > m.totalSubscribers:
		m.addLog(fmt.Sprintf("tier counts total %d but channel reports %d subscribers", sum, m.totalSubscribers))
	}
}

func (m *Membership) Kind() Kind { return KindMembership }

func (m *Membership) TotalSubscribers() int { return m.totalSubscribers }

// TierBreakdown returns a copy of the per-tier subscriber counts.
func (m *Membership) TierBreakdown() map[string]int {
	out := make(map[string]int, len(m.tierBreakdown))
	maps.Copy(out, m.tierBreakdown)
	return out
}

// ComputeTax withholds on the amount left after the platform fee and the
// refund reserve.
func (m *Membership) ComputeTax() float64 {
	taxable := m.amount * (1 - platformFeeRate) * (1 - refundReserveRate)
	return Round2(taxable * withholdingRate)
}

// PlatformShare is the platform's cut of the gross amount.
func (m *Membership) PlatformShare() float64 {
	return Round2(m.amount * platformFeeRate)
}

// ARPU is average revenue per subscriber; zero when there are none.
func (m *Membership) ARPU() float64 {
	if m.totalSubscribers <= 0 {
		return 0
	}
	return Round2(m.amount / float64(m.totalSubscribers))
}

// ForecastNextMonth projects next month's income from the current ARPU and
// an expected churn rate. Rates outside (0,1) fall back to the default.
func (m *Membership) ForecastNextMonth(churnRate float64) float64 {
	if churnRate < 0 || churnRate >= 1 {
		churnRate = DefaultChurnRate
	}
	remaining := int(float64(m.totalSubscribers) * (1 - churnRate))
	forecast := Round2(float64(remaining) * m.ARPU())
	m.addLog(fmt.Sprintf("forecast %.2f %s for next month at %.0f%% churn", forecast, m.currency, churnRate*100))
	return forecast
}

func (m *Membership) Details() Details {
	d := m.baseDetails(KindMembership, m.ComputeTax())
	d.Membership = &MembershipStats{
		TotalSubscribers: m.totalSubscribers,
		Tiers:            m.TierBreakdown(),
		ARPU:             m.ARPU(),
	}
	return d
}
