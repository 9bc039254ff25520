package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/objetivatech/convergencia-empreendedora-sub000/billing"
	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

// Clearing windows per instrument. Boleto needs three days to clear; the
// first charge of a new subscription falls due one day out.
const (
	boletoClearing  = 72 * time.Hour
	bootstrapWindow = 24 * time.Hour
)

type chargeOptions struct {
	// ExternalReference ties a bootstrap charge back to its subscription.
	ExternalReference string
	// DueDate overrides the instrument default when non-zero. Boleto keeps
	// its clearing window regardless: a paper voucher cannot clear faster.
	DueDate time.Time
}

func billingTypeFor(instrument models.Instrument) (gateway.BillingType, error) {
	switch instrument {
	case models.InstrumentPix:
		return gateway.BillingTypePix, nil
	case models.InstrumentCreditCard:
		return gateway.BillingTypeCreditCard, nil
	case models.InstrumentDebitCard:
		return gateway.BillingTypeDebitCard, nil
	case models.InstrumentBoleto:
		return gateway.BillingTypeBoleto, nil
	}
	return "", fmt.Errorf("%w: instrument %q", ErrInvalidRequest, instrument)
}

// buildCharge creates one payable resource at the gateway. Card instruments
// are validated locally first so an incomplete card never produces a gateway
// call. Charge creation is never retried.
func (s *Service) buildCharge(ctx context.Context, customerID string, amt billing.Amount, req *models.CheckoutRequest, opts chargeOptions) (*gateway.Payment, error) {
	billingType, err := billingTypeFor(req.Instrument)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	due := opts.DueDate
	if due.IsZero() {
		due = now
	}
	if req.Instrument == models.InstrumentBoleto {
		due = now.Add(boletoClearing)
	}

	payReq := gateway.CreatePaymentRequest{
		Customer:          customerID,
		BillingType:       billingType,
		Value:             amt.Value.InexactFloat64(),
		DueDate:           due.Format(gateway.DateLayout),
		Description:       amt.Description,
		ExternalReference: opts.ExternalReference,
	}

	if req.Instrument.IsCard() {
		if !req.Card.Complete() {
			return nil, fmt.Errorf("%w: holder name, number, expiry and security code are all required", ErrValidation)
		}
		payReq.InstallmentCount = 1
		payReq.CreditCard = &gateway.CreditCard{
			HolderName:   req.Card.HolderName,
			Number:       req.Card.Number,
			ExpiryMonth:  req.Card.ExpiryMonth,
			ExpiryYear:   req.Card.ExpiryYear,
			SecurityCode: req.Card.SecurityCode,
		}
		payReq.CreditCardHolderInfo = &gateway.CreditCardHolderInfo{
			Name:          req.Buyer.DisplayName,
			Email:         req.Buyer.Email,
			CpfCnpj:       req.Buyer.CpfCnpj,
			PostalCode:    req.Buyer.PostalCode,
			AddressNumber: req.Buyer.AddressNumber,
			Phone:         req.Buyer.Phone,
		}
	}

	payment, err := s.Gateway.CreatePayment(ctx, payReq)
	if err != nil {
		return nil, wrapGatewayErr(err)
	}
	return payment, nil
}
