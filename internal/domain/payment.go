// Package domain encodes creator revenue records and their attributes
package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a payment in its lifecycle
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// ValidStatuses returns the canonical status set in lifecycle order.
func ValidStatuses() []Status {
	return []Status{
		StatusPending,
		StatusProcessing,
		StatusCompleted,
		StatusFailed,
		StatusOnHold,
		StatusCancelled,
		StatusRefunded,
	}
}

func (s Status) Valid() bool {
	return slices.Contains(ValidStatuses(), s)
}

// Kind identifies which revenue stream a record belongs to
type Kind string

const (
	KindAdRevenue   Kind = "ad_revenue"
	KindMembership  Kind = "membership"
	KindSponsorship Kind = "sponsorship"
)

func Kinds() []Kind {
	return []Kind{KindAdRevenue, KindMembership, KindSponsorship}
}

const (
	DefaultCurrency = "TRY"

	// HighValueAmount marks payouts that escalate to top priority and are
	// routed to manual review instead of automatic processing.
	HighValueAmount = 50000.0

	minChannelIDLen = 3
)

var (
	periodPattern   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Record is the contract every revenue stream satisfies. Mutation goes
// through the setters so the audit trail and derived fields stay consistent.
type Record interface {
	ID() string
	ChannelID() string
	Amount() float64
	Currency() string
	Period() string
	Status() Status
	Priority() int
	CreatedAt() time.Time
	UpdatedAt() time.Time
	AuditTrail() []string
	Kind() Kind
	ComputeTax() float64
	Details() Details
	SetAmount(v float64) error
	SetStatus(s Status) error
	IsPayable() bool
}

// Details is a read-only snapshot of a record for reports and rendering.
// Exactly one of the variant sections is populated.
type Details struct {
	Kind      Kind      `json:"kind"`
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Period    string    `json:"period"`
	Status    Status    `json:"status"`
	Priority  int       `json:"priority"`
	Financial Financial `json:"financial"`

	Ad          *AdMetrics        `json:"ad,omitempty"`
	Membership  *MembershipStats  `json:"membership,omitempty"`
	Sponsorship *SponsorshipTerms `json:"sponsorship,omitempty"`
}

type Financial struct {
	Gross    float64 `json:"gross"`
	Tax      float64 `json:"tax"`
	Net      float64 `json:"net"`
	Currency string  `json:"currency"`
}

// PaymentBase carries the fields shared by all revenue streams. Fields are
// unexported so invariants (3-letter currency, valid period, derived
// priority) cannot be bypassed.
type PaymentBase struct {
	id        string
	channelID string
	amount    float64
	currency  string
	period    string
	status    Status
	priority  int
	createdAt time.Time
	updatedAt time.Time
	auditLog  []string
}

func newPaymentBase(channelID string, amount float64, currency, period string) (PaymentBase, error) {
	channelID = strings.TrimSpace(channelID)
	if len(channelID) < minChannelIDLen {
		return PaymentBase{}, NewValidationError("channel id must be at least 3 characters")
	}
	if amount < 0 {
		return PaymentBase{}, NewInvalidAmountError(amount)
	}

	now := time.Now()
	p := PaymentBase{
		id:        uuid.NewString(),
		channelID: channelID,
		amount:    amount,
		currency:  DefaultCurrency,
		period:    period,
		status:    StatusPending,
		priority:  priorityFor(amount),
		createdAt: now,
		updatedAt: now,
	}
	p.addLog("payment record created")

	code, warn := normalizeCurrency(currency)
	p.currency = code
	if warn != "" {
		p.addLog(warn)
	}
	if !periodPattern.MatchString(period) {
		p.period = now.Format("2006-01")
		p.addLog(fmt.Sprintf("period %q replaced with %s", period, p.period))
	}
	return p, nil
}

// normalizeCurrency never fails: malformed codes are truncated or replaced
// with the default, and the warning is recorded on the record's audit trail.
func normalizeCurrency(raw string) (code, warning string) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if currencyPattern.MatchString(c) {
		return c, ""
	}
	if len(c) > 3 && currencyPattern.MatchString(c[:3]) {
		return c[:3], fmt.Sprintf("currency %q truncated to %s", raw, c[:3])
	}
	return DefaultCurrency, fmt.Sprintf("currency %q replaced with %s", raw, DefaultCurrency)
}

func priorityFor(amount float64) int {
	switch {
	case amount > 100000:
		return 1
	case amount > 10000:
		return 2
	case amount > 1000:
		return 3
	default:
		return 4
	}
}

func (p *PaymentBase) ID() string           { return p.id }
func (p *PaymentBase) ChannelID() string    { return p.channelID }
func (p *PaymentBase) Amount() float64      { return p.amount }
func (p *PaymentBase) Currency() string     { return p.currency }
func (p *PaymentBase) Period() string       { return p.period }
func (p *PaymentBase) Status() Status       { return p.status }
func (p *PaymentBase) Priority() int        { return p.priority }
func (p *PaymentBase) CreatedAt() time.Time { return p.createdAt }
func (p *PaymentBase) UpdatedAt() time.Time { return p.updatedAt }

// AuditTrail returns a copy of the record's audit entries, oldest first.
func (p *PaymentBase) AuditTrail() []string {
	return slices.Clone(p.auditLog)
}

// SetAmount updates the amount and re-derives the priority level. High-value
// amounts escalate straight to priority 1 regardless of the usual bands.
func (p *PaymentBase) SetAmount(v float64) error {
	if v < 0 {
		return NewInvalidAmountError(v)
	}
	p.amount = v
	p.priority = priorityFor(v)
	if v > HighValueAmount {
		p.priority = 1
	}
	p.updatedAt = time.Now()
	p.addLog(fmt.Sprintf("amount set to %.2f %s", v, p.currency))
	return nil
}

// SetStatus accepts any member of the status enum; unknown values are
// rejected without touching state.
func (p *PaymentBase) SetStatus(s Status) error {
	if !s.Valid() {
		return NewInvalidStatusError(s)
	}
	prev := p.status
	p.status = s
	p.updatedAt = time.Now()
	p.addLog(fmt.Sprintf("status changed from %s to %s", prev, s))
	return nil
}

// IsPayable reports whether the record can enter payout processing.
func (p *PaymentBase) IsPayable() bool {
	return (p.status == StatusPending || p.status == StatusOnHold) && p.amount > 0
}

func (p *PaymentBase) addLog(msg string) {
	p.auditLog = append(p.auditLog, fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), msg))
}

func (p *PaymentBase) baseDetails(k Kind, tax float64) Details {
	gross := Round2(p.amount)
	return Details{
		Kind:      k,
		ID:        p.id,
		ChannelID: p.channelID,
		Period:    p.period,
		Status:    p.status,
		Priority:  p.priority,
		Financial: Financial{
			Gross:    gross,
			Tax:      tax,
			Net:      Round2(gross - tax),
			Currency: p.currency,
		},
	}
}
