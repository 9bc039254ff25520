// Package wizard drives the buyer-facing checkout steps: collect contact
// data, pick an instrument, collect card data when needed, then hand the
// assembled request to the orchestrator exactly once and hold its result.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

type Step string

const (
	StepCustomerData  Step = "customer_data"
	StepPaymentMethod Step = "payment_method"
	StepCardData      Step = "card_data"
	StepProcessing    Step = "processing"
	StepResult        Step = "result"
)

// Orchestrator is the single server call a wizard makes.
type Orchestrator interface {
	Process(ctx context.Context, accountID uint, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

var (
	ErrWrongStep      = errors.New("action not allowed in current step")
	ErrNoBackFromHere = errors.New("cannot navigate back from current step")
)

// Wizard is one in-flight checkout. The kind-specific order is fixed at
// creation (the buyer already chose what to purchase); the wizard only
// gathers who pays and how.
type Wizard struct {
	ID        string
	accountID uint
	orch      Orchestrator

	step    Step
	req     models.CheckoutRequest
	result  *models.CheckoutResponse
	lastErr error
}

// New starts a wizard for one order. kind and its matching payload must
// already be set on order; buyer, instrument and card are filled step by
// step.
func New(orch Orchestrator, accountID uint, order models.CheckoutRequest) *Wizard {
	order.Buyer = models.Buyer{}
	order.Card = nil
	order.Instrument = ""
	return &Wizard{
		ID:        uuid.NewString(),
		accountID: accountID,
		orch:      orch,
		step:      StepCustomerData,
		req:       order,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Result() *models.CheckoutResponse { return w.result }

func (w *Wizard) LastErr() error { return w.lastErr }

func (w *Wizard) Request() models.CheckoutRequest { return w.req }

// SubmitCustomerData validates and stores buyer contact data, advancing to
// the payment method step.
func (w *Wizard) SubmitCustomerData(buyer models.Buyer) error {
	if w.step != StepCustomerData {
		return fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}
	if buyer.DisplayName == "" || buyer.Email == "" || buyer.CpfCnpj == "" {
		return models.ErrMissingBuyer
	}
	w.req.Buyer = buyer
	w.step = StepPaymentMethod
	return nil
}

// SubmitPaymentMethod records the chosen instrument. Card instruments
// require one more data step; everything else goes straight to processing.
func (w *Wizard) SubmitPaymentMethod(instrument models.Instrument) error {
	if w.step != StepPaymentMethod {
		return fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}
	if !instrument.Valid() {
		return models.ErrBadInstrument
	}
	w.req.Instrument = instrument
	if instrument.IsCard() {
		w.step = StepCardData
		return nil
	}
	w.req.Card = nil
	w.step = StepProcessing
	return nil
}

// SubmitCardData validates the card fields and advances to processing.
func (w *Wizard) SubmitCardData(card models.CardInfo) error {
	if w.step != StepCardData {
		return fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}
	if !card.Complete() {
		return errors.New("all card fields are required")
	}
	w.req.Card = &card
	w.step = StepProcessing
	return nil
}

// Back returns to the previous data-entry step. Processing and the result
// screen cannot be navigated away from.
func (w *Wizard) Back() error {
	switch w.step {
	case StepPaymentMethod:
		w.step = StepCustomerData
	case StepCardData:
		w.step = StepPaymentMethod
	default:
		return fmt.Errorf("%w: %s", ErrNoBackFromHere, w.step)
	}
	return nil
}

// Checkout performs the single orchestrator call for this processing entry.
// On success the wizard lands on the result screen. On failure it returns to
// the payment method step with buyer data intact so another instrument can
// be tried; it never resubmits on its own.
func (w *Wizard) Checkout(ctx context.Context) (*models.CheckoutResponse, error) {
	if w.step != StepProcessing {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, w.step)
	}

	resp, err := w.orch.Process(ctx, w.accountID, &w.req)
	if err != nil {
		w.lastErr = err
		w.step = StepPaymentMethod
		return nil, err
	}

	w.lastErr = nil
	w.result = resp
	w.step = StepResult
	return resp, nil
}
