package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	corporateTaxRate = 0.20
	stampDutyRate    = 0.00948

	unknownSponsor = "Unknown Sponsor"
)

var contractPrefixes = []string{"CNT-", "SP-"}

// SponsorshipTerms is the contract snapshot exposed through Details.
type SponsorshipTerms struct {
	SponsorName       string  `json:"sponsor_name"`
	ContractID        string  `json:"contract_id"`
	Installments      int     `json:"installments"`
	InstallmentAmount float64 `json:"installment_amount"`
	InvoiceSent       bool    `json:"invoice_sent"`
	InvoiceNumber     string  `json:"invoice_number,omitempty"`
	DeliveryConfirmed bool    `json:"delivery_confirmed"`
}

// Sponsorship is brand deal income tied to a contract.
type Sponsorship struct {
	PaymentBase
	sponsorName       string
	contractID        string
	installmentCount  int
	invoiceSent       bool
	invoiceNumber     string
	deliveryConfirmed bool
}

func NewSponsorship(channelID string, amount float64, currency, period string, sponsorName, contractID string) (*Sponsorship, error) {
	base, err := newPaymentBase(channelID, amount, currency, period)
	if err != nil {
		return nil, err
	}

	s := &Sponsorship{
		PaymentBase:      base,
		sponsorName:      strings.TrimSpace(sponsorName),
		contractID:       contractID,
		installmentCount: 1,
	}
	if len(s.sponsorName) < 2 {
		s.sponsorName = unknownSponsor
		s.addLog(fmt.Sprintf("sponsor name %q replaced with %s", sponsorName, unknownSponsor))
	}
	if !hasContractPrefix(contractID) {
		u := uuid.New()
		s.contractID = fmt.Sprintf("CNT-%X", u[:3])
		s.addLog(fmt.Sprintf("contract id %q replaced with generated %s", contractID, s.contractID))
	}
	return s, nil
}

func hasContractPrefix(id string) bool {
	for _, p := range contractPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

func (s *Sponsorship) Kind() Kind { return KindSponsorship }

func (s *Sponsorship) SponsorName() string     { return s.sponsorName }
func (s *Sponsorship) ContractID() string      { return s.contractID }
func (s *Sponsorship) Installments() int       { return s.installmentCount }
func (s *Sponsorship) InvoiceSent() bool       { return s.invoiceSent }
func (s *Sponsorship) InvoiceNumber() string   { return s.invoiceNumber }
func (s *Sponsorship) DeliveryConfirmed() bool { return s.deliveryConfirmed }

// ComputeTax applies corporate tax plus stamp duty on the gross amount.
func (s *Sponsorship) ComputeTax() float64 {
	return Round2(s.amount * (corporateTaxRate + stampDutyRate))
}

// BuildInstallmentPlan splits the contract into n equal installments.
func (s *Sponsorship) BuildInstallmentPlan(n int) error {
	if n < 1 {
		return NewValidationError("installment count must be at least 1")
	}
	s.installmentCount = n
	s.addLog(fmt.Sprintf("payment plan set to %d installments of %.2f %s", n, s.InstallmentAmount(), s.currency))
	return nil
}

// InstallmentAmount is the per-installment share of the gross amount.
func (s *Sponsorship) InstallmentAmount() float64 {
	return Round2(s.amount / float64(s.installmentCount))
}

// MarkInvoiceSent issues an invoice number on first call; later calls keep
// the original number and only note the repeat.
func (s *Sponsorship) MarkInvoiceSent() string {
	if s.invoiceSent {
		s.addLog(fmt.Sprintf("invoice %s already sent", s.invoiceNumber))
		return s.invoiceNumber
	}
	u := uuid.New()
	s.invoiceNumber = fmt.Sprintf("INV-%s-%X", time.Now().Format("20060102"), u[:2])
	s.invoiceSent = true
	s.addLog(fmt.Sprintf("invoice %s sent to %s", s.invoiceNumber, s.sponsorName))
	return s.invoiceNumber
}

// ConfirmDelivery records that the sponsored content went live.
func (s *Sponsorship) ConfirmDelivery() {
	if s.deliveryConfirmed {
		s.addLog("delivery already confirmed")
		return
	}
	s.deliveryConfirmed = true
	s.addLog(fmt.Sprintf("delivery confirmed for contract %s", s.contractID))
}

func (s *Sponsorship) Details() Details {
	d := s.baseDetails(KindSponsorship, s.ComputeTax())
	d.Sponsorship = &SponsorshipTerms{
		SponsorName:       s.sponsorName,
		ContractID:        s.contractID,
		Installments:      s.installmentCount,
		InstallmentAmount: s.InstallmentAmount(),
		InvoiceSent:       s.invoiceSent,
		InvoiceNumber:     s.invoiceNumber,
		DeliveryConfirmed: s.deliveryConfirmed,
	}
	return d
}
