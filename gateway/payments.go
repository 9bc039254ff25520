package gateway

import (
	"context"
	"time"
)

type BillingType string

const (
	BillingTypePix        BillingType = "PIX"
	BillingTypeCreditCard BillingType = "CREDIT_CARD"
	BillingTypeDebitCard  BillingType = "DEBIT_CARD"
	BillingTypeBoleto     BillingType = "BOLETO"
)

// Dates cross the wire in the gateway's day-resolution format.
const DateLayout = "2006-01-02"

type CreditCard struct {
	HolderName   string `json:"holderName"`
	Number       string `json:"number"`
	ExpiryMonth  string `json:"expiryMonth"`
	ExpiryYear   string `json:"expiryYear"`
	SecurityCode string `json:"ccv"`
}

// CreditCardHolderInfo is the contact data card networks require alongside
// the card itself.
type CreditCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode,omitempty"`
	AddressNumber string `json:"addressNumber,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

type CreatePaymentRequest struct {
	Customer             string                `json:"customer"`
	BillingType          BillingType           `json:"billingType"`
	Value                float64               `json:"value"`
	DueDate              string                `json:"dueDate"`
	Description          string                `json:"description,omitempty"`
	ExternalReference    string                `json:"externalReference,omitempty"`
	InstallmentCount     int                   `json:"installmentCount,omitempty"`
	CreditCard           *CreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *CreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

// Payment is one payable resource at the gateway. The instrument-specific
// artifact fields are populated per billing type: PixPayload/PixExpiresAt for
// PIX, BankSlipURL/IdentificationField for boleto, TransactionReceiptURL and
// InstallmentCount for cards.
type Payment struct {
	ID                    string      `json:"id"`
	Status                string      `json:"status"`
	Value                 float64     `json:"value"`
	BillingType           BillingType `json:"billingType"`
	DueDate               string      `json:"dueDate"`
	Description           string      `json:"description,omitempty"`
	ExternalReference     string      `json:"externalReference,omitempty"`
	InvoiceURL            string      `json:"invoiceUrl,omitempty"`
	BankSlipURL           string      `json:"bankSlipUrl,omitempty"`
	IdentificationField   string      `json:"identificationField,omitempty"`
	TransactionReceiptURL string      `json:"transactionReceiptUrl,omitempty"`
	InstallmentCount      int         `json:"installmentCount,omitempty"`
	PixPayload            string      `json:"pixPayload,omitempty"`
	PixExpiresAt          *time.Time  `json:"pixExpiresAt,omitempty"`
}

// CreatePayment creates a one-off or bootstrap charge. Never retried: charge
// creation carries no idempotency key, so a blind retry could double-charge.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	payment := &Payment{}
	if err := c.post(ctx, "/payments", req, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
