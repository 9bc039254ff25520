package wizard_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/objetivatech/convergencia-empreendedora-sub000/checkout"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
	"github.com/objetivatech/convergencia-empreendedora-sub000/wizard"
)

// scriptedOrchestrator returns its queued outcomes in order and counts calls.
type scriptedOrchestrator struct {
	calls     int
	responses []*models.CheckoutResponse
	errs      []error
	lastReq   models.CheckoutRequest
}

func (s *scriptedOrchestrator) Process(ctx context.Context, accountID uint, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	s.lastReq = *req
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return &models.CheckoutResponse{Success: true, GatewayChargeID: "pay_1", Status: "PENDING"}, nil
}

func donationOrder() models.CheckoutRequest {
	return models.CheckoutRequest{
		Kind:     models.KindDonation,
		Donation: &models.DonationOrder{Amount: decimal.RequireFromString("25.00")},
	}
}

func validBuyer() models.Buyer {
	return models.Buyer{DisplayName: "Ana Costa", Email: "ana@example.com", CpfCnpj: "98765432100"}
}

func validCard() models.CardInfo {
	return models.CardInfo{
		HolderName:   "ANA COSTA",
		Number:       "4111111111111111",
		ExpiryMonth:  "09",
		ExpiryYear:   "2028",
		SecurityCode: "123",
	}
}

func TestHappyPathWithoutCard(t *testing.T) {
	orch := &scriptedOrchestrator{}
	w := wizard.New(orch, 1, donationOrder())
	require.Equal(t, wizard.StepCustomerData, w.Step())

	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.Equal(t, wizard.StepPaymentMethod, w.Step())

	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentPix))
	require.Equal(t, wizard.StepProcessing, w.Step())

	resp, err := w.Checkout(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, wizard.StepResult, w.Step())
	require.Equal(t, resp, w.Result())
	require.Equal(t, 1, orch.calls)
}

func TestCardInstrumentRequiresCardStep(t *testing.T) {
	orch := &scriptedOrchestrator{}
	w := wizard.New(orch, 1, donationOrder())

	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentCreditCard))
	require.Equal(t, wizard.StepCardData, w.Step())

	incomplete := validCard()
	incomplete.SecurityCode = ""
	require.Error(t, w.SubmitCardData(incomplete))
	require.Equal(t, wizard.StepCardData, w.Step(), "invalid card must not advance")

	require.NoError(t, w.SubmitCardData(validCard()))
	require.Equal(t, wizard.StepProcessing, w.Step())

	_, err := w.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orch.lastReq.Card)
	require.Equal(t, models.InstrumentCreditCard, orch.lastReq.Instrument)
}

func TestValidationGatesForwardTransitions(t *testing.T) {
	w := wizard.New(&scriptedOrchestrator{}, 1, donationOrder())

	require.Error(t, w.SubmitCustomerData(models.Buyer{DisplayName: "Ana"}))
	require.Equal(t, wizard.StepCustomerData, w.Step())

	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.Error(t, w.SubmitPaymentMethod("cheque"))
	require.Equal(t, wizard.StepPaymentMethod, w.Step())
}

func TestOutOfOrderSubmissionsAreRejected(t *testing.T) {
	w := wizard.New(&scriptedOrchestrator{}, 1, donationOrder())

	require.ErrorIs(t, w.SubmitPaymentMethod(models.InstrumentPix), wizard.ErrWrongStep)
	require.ErrorIs(t, w.SubmitCardData(validCard()), wizard.ErrWrongStep)
	_, err := w.Checkout(context.Background())
	require.ErrorIs(t, err, wizard.ErrWrongStep)
}

func TestBackNavigationRules(t *testing.T) {
	w := wizard.New(&scriptedOrchestrator{}, 1, donationOrder())
	require.ErrorIs(t, w.Back(), wizard.ErrNoBackFromHere)

	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentCreditCard))
	require.Equal(t, wizard.StepCardData, w.Step())

	require.NoError(t, w.Back())
	require.Equal(t, wizard.StepPaymentMethod, w.Step())
	require.NoError(t, w.Back())
	require.Equal(t, wizard.StepCustomerData, w.Step())
}

func TestNoBackFromResult(t *testing.T) {
	w := wizard.New(&scriptedOrchestrator{}, 1, donationOrder())
	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentPix))
	_, err := w.Checkout(context.Background())
	require.NoError(t, err)
	require.ErrorIs(t, w.Back(), wizard.ErrNoBackFromHere)
}

func TestFailureReturnsToPaymentMethodKeepingBuyer(t *testing.T) {
	orch := &scriptedOrchestrator{errs: []error{checkout.ErrPaymentRejected}}
	w := wizard.New(orch, 1, donationOrder())

	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentCreditCard))
	require.NoError(t, w.SubmitCardData(validCard()))

	_, err := w.Checkout(context.Background())
	require.ErrorIs(t, err, checkout.ErrPaymentRejected)
	require.Equal(t, wizard.StepPaymentMethod, w.Step())
	require.ErrorIs(t, w.LastErr(), checkout.ErrPaymentRejected)
	require.Equal(t, validBuyer(), w.Request().Buyer, "buyer data survives a failed attempt")

	// The buyer picks another instrument; the wizard never re-submits on
	// its own, so this is the second and only other call.
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentPix))
	resp, err := w.Checkout(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, 2, orch.calls)
	require.Nil(t, w.LastErr())
}

func TestCheckoutCalledOncePerProcessingEntry(t *testing.T) {
	orch := &scriptedOrchestrator{}
	w := wizard.New(orch, 1, donationOrder())
	require.NoError(t, w.SubmitCustomerData(validBuyer()))
	require.NoError(t, w.SubmitPaymentMethod(models.InstrumentPix))

	_, err := w.Checkout(context.Background())
	require.NoError(t, err)
	_, err = w.Checkout(context.Background())
	require.ErrorIs(t, err, wizard.ErrWrongStep, "a finished wizard cannot re-submit")
	require.Equal(t, 1, orch.calls)
}

func TestOrderPayloadIsPreservedAndSanitized(t *testing.T) {
	order := donationOrder()
	order.Instrument = models.InstrumentBoleto
	order.Buyer = models.Buyer{DisplayName: "stale"}
	order.Card = &models.CardInfo{Number: "stale"}

	w := wizard.New(&scriptedOrchestrator{}, 1, order)
	req := w.Request()
	require.Equal(t, models.KindDonation, req.Kind)
	require.NotNil(t, req.Donation)
	require.Empty(t, req.Buyer.DisplayName, "wizard collects buyer data itself")
	require.Nil(t, req.Card)
	require.Empty(t, req.Instrument)
}
