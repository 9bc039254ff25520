package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutKind string

const (
	KindSubscription CheckoutKind = "subscription"
	KindProduct      CheckoutKind = "product"
	KindDonation     CheckoutKind = "donation"
	KindCommunity    CheckoutKind = "community"
)

type Instrument string

const (
	InstrumentPix        Instrument = "pix"
	InstrumentCreditCard Instrument = "credit_card"
	InstrumentDebitCard  Instrument = "debit_card"
	InstrumentBoleto     Instrument = "boleto"
)

func (i Instrument) IsCard() bool {
	return i == InstrumentCreditCard || i == InstrumentDebitCard
}

func (i Instrument) Valid() bool {
	switch i {
	case InstrumentPix, InstrumentCreditCard, InstrumentDebitCard, InstrumentBoleto:
		return true
	}
	return false
}

// Buyer is the contact data collected by the checkout wizard. Email is the
// key the gateway customer directory is resolved by.
type Buyer struct {
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpf_cnpj"`
	Phone         string `json:"phone,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	AddressNumber string `json:"address_number,omitempty"`
}

// CardInfo carries card-network data for credit/debit charges. All fields are
// required; it is never persisted.
type CardInfo struct {
	HolderName   string `json:"holder_name"`
	Number       string `json:"number"`
	ExpiryMonth  string `json:"expiry_month"`
	ExpiryYear   string `json:"expiry_year"`
	SecurityCode string `json:"security_code"`
}

func (c *CardInfo) Complete() bool {
	return c != nil && c.HolderName != "" && c.Number != "" &&
		c.ExpiryMonth != "" && c.ExpiryYear != "" && c.SecurityCode != ""
}

type SubscriptionOrder struct {
	PlanID uint         `json:"plan_id"`
	Cycle  BillingCycle `json:"cycle"`
}

type OrderItem struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type ProductOrder struct {
	Items []OrderItem `json:"items"`
}

type DonationOrder struct {
	Amount decimal.Decimal `json:"amount"`
}

type CommunityOrder struct {
	Amount decimal.Decimal `json:"amount"`
}

// CheckoutRequest is the single inbound payload of the checkout flow. Exactly
// one kind-specific order must be present, and it must match Kind, so card
// and order fields never leak across branches.
type CheckoutRequest struct {
	Kind       CheckoutKind `json:"kind"`
	Instrument Instrument   `json:"instrument"`
	Buyer      Buyer        `json:"buyer"`

	Subscription *SubscriptionOrder `json:"subscription,omitempty"`
	Product      *ProductOrder      `json:"product,omitempty"`
	Donation     *DonationOrder     `json:"donation,omitempty"`
	Community    *CommunityOrder    `json:"community,omitempty"`

	Card *CardInfo `json:"card,omitempty"`
}

var (
	ErrMissingBuyer   = errors.New("buyer name, email and cpf/cnpj are required")
	ErrBadInstrument  = errors.New("unsupported payment instrument")
	ErrBadKindPayload = errors.New("exactly one kind-specific order matching kind is required")
)

// Validate checks the envelope shape only; amount rules live in the billing
// package.
func (r *CheckoutRequest) Validate() error {
	if !r.Instrument.Valid() {
		return ErrBadInstrument
	}
	if r.Buyer.DisplayName == "" || r.Buyer.Email == "" || r.Buyer.CpfCnpj == "" {
		return ErrMissingBuyer
	}

	present := 0
	if r.Subscription != nil {
		present++
	}
	if r.Product != nil {
		present++
	}
	if r.Donation != nil {
		present++
	}
	if r.Community != nil {
		present++
	}
	if present != 1 {
		return ErrBadKindPayload
	}

	switch r.Kind {
	case KindSubscription:
		if r.Subscription == nil || !r.Subscription.Cycle.Valid() {
			return ErrBadKindPayload
		}
	case KindProduct:
		if r.Product == nil {
			return ErrBadKindPayload
		}
	case KindDonation:
		if r.Donation == nil {
			return ErrBadKindPayload
		}
	case KindCommunity:
		if r.Community == nil {
			return ErrBadKindPayload
		}
	default:
		return ErrBadKindPayload
	}
	return nil
}

// Instrument-specific response details.

type PixDetails struct {
	PayableCode string    `json:"payable_code"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type BoletoDetails struct {
	DocumentURL string    `json:"document_url"`
	BarCode     string    `json:"bar_code"`
	DueDate     time.Time `json:"due_date"`
}

type CardDetails struct {
	Installments int    `json:"installments,omitempty"`
	ReceiptURL   string `json:"receipt_url,omitempty"`
}

// CheckoutResponse is the uniform envelope returned for every checkout. On
// success exactly one of Pix/Boleto/Card is set, matching Instrument. Warning
// is non-empty when the gateway operation succeeded but local bookkeeping
// failed.
type CheckoutResponse struct {
	Success            bool            `json:"success"`
	ErrorCode          string          `json:"error_code,omitempty"`
	Message            string          `json:"message,omitempty"`
	Warning            string          `json:"warning,omitempty"`
	GatewayChargeID    string          `json:"gateway_charge_id,omitempty"`
	LocalTransactionID uint            `json:"local_transaction_id,omitempty"`
	Status             string          `json:"status,omitempty"`
	Value              decimal.Decimal `json:"value"`
	Instrument         Instrument      `json:"instrument,omitempty"`

	Pix    *PixDetails    `json:"pix,omitempty"`
	Boleto *BoletoDetails `json:"boleto,omitempty"`
	Card   *CardDetails   `json:"card,omitempty"`
}
