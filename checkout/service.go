// Package checkout orchestrates one purchase end to end: amount computation,
// buyer resolution at the payment gateway, charge or subscription creation,
// local bookkeeping and entitlement side effects.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/objetivatech/convergencia-empreendedora-sub000/billing"
	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
	"github.com/objetivatech/convergencia-empreendedora-sub000/repository"
)

// Gateway is the slice of the payment gateway client the orchestrator uses.
type Gateway interface {
	FindCustomerByEmail(ctx context.Context, email string) (*gateway.Customer, error)
	CreateCustomer(ctx context.Context, req gateway.CreateCustomerRequest) (*gateway.Customer, error)
	CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.Payment, error)
	CreateSubscription(ctx context.Context, req gateway.CreateSubscriptionRequest) (*gateway.Subscription, error)
}

// Store is the local persistence the orchestrator needs.
type Store interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
	PlanByID(ctx context.Context, id uint) (*models.Plan, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	CreateSubscription(ctx context.Context, sub *models.UserSubscription) error
	GrantRole(ctx context.Context, userID uint, role string) error
}

type Service struct {
	Gateway Gateway
	Store   Store
	// Now is swappable for due-date assertions in tests.
	Now func() time.Time
}

func NewService(gw Gateway, store Store) *Service {
	return &Service{Gateway: gw, Store: store, Now: time.Now}
}

const persistenceWarning = "payment created at the gateway but local bookkeeping failed; it will be reconciled"

// Process runs one checkout for the given authenticated account. The chain
// is strictly sequential: validate → amount → customer → charge/subscription
// → persist → entitle → shape. Nothing is persisted locally unless the
// gateway call succeeded; a local write failure after gateway success is
// reported as success with a warning, because money-relevant state already
// exists externally.
func (s *Service) Process(ctx context.Context, accountID uint, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if accountID == 0 {
		return nil, ErrUnauthorized
	}
	if _, err := s.Store.UserByID(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	// Card completeness is checked before the buyer is resolved so an
	// incomplete card never causes any gateway traffic.
	if req.Instrument.IsCard() && !req.Card.Complete() {
		return nil, fmt.Errorf("%w: holder name, number, expiry and security code are all required", ErrValidation)
	}

	var plan *models.Plan
	if req.Kind == models.KindSubscription {
		var err error
		plan, err = s.Store.PlanByID(ctx, req.Subscription.PlanID)
		if err != nil {
			if errors.Is(err, repository.ErrPlanNotFound) {
				return nil, errors.Join(ErrInvalidRequest, err)
			}
			return nil, err
		}
	}

	amt, err := billing.Calculate(req, plan)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}

	customerID, err := s.resolveCustomer(ctx, req.Buyer)
	if err != nil {
		return nil, err
	}

	var (
		sub     *gateway.Subscription
		payment *gateway.Payment
	)
	if req.Kind == models.KindSubscription {
		sub, payment, err = s.buildSubscription(ctx, customerID, amt, req)
	} else {
		payment, err = s.buildCharge(ctx, customerID, amt, req, chargeOptions{})
	}
	if err != nil {
		return nil, err
	}

	resp := s.shapeResponse(amt, req.Instrument, payment)

	if warn := s.persist(ctx, accountID, plan, req, amt, sub, payment, resp); warn != "" {
		resp.Warning = warn
	}

	if req.Kind == models.KindSubscription {
		if err := s.Store.GrantRole(ctx, accountID, models.RoleEmpreendedora); err != nil {
			// The purchase already succeeded; the entitlement is
			// reconciled later.
			log.Printf("checkout: grant role failed user=%d err=%v", accountID, err)
		}
	}

	return resp, nil
}

// persist writes the ledger row and, for subscriptions, the local
// subscription record. Returns a warning string instead of an error: the
// gateway resource exists and is not rolled back.
func (s *Service) persist(ctx context.Context, accountID uint, plan *models.Plan, req *models.CheckoutRequest, amt billing.Amount, sub *gateway.Subscription, payment *gateway.Payment, resp *models.CheckoutResponse) string {
	raw, _ := json.Marshal(payment)
	meta := datatypes.JSONMap{"description": amt.Description}
	if sub != nil {
		meta["gateway_subscription_id"] = sub.ID
	}

	tx := &models.Transaction{
		UserID:          accountID,
		GatewayChargeID: payment.ID,
		Value:           amt.Value,
		Currency:        "BRL",
		Kind:            req.Kind,
		Instrument:      req.Instrument,
		Status:          models.TransactionStatusPending,
		DueDate:         parseGatewayDate(payment.DueDate, s.Now()),
		RawPayload:      raw,
		Meta:            meta,
	}
	if err := s.Store.CreateTransaction(ctx, tx); err != nil {
		log.Printf("checkout: transaction write failed charge=%s err=%v", payment.ID, err)
		return persistenceWarning
	}
	resp.LocalTransactionID = tx.ID

	if sub != nil {
		started := s.Now()
		record := &models.UserSubscription{
			UserID:                accountID,
			PlanID:                plan.ID,
			Cycle:                 req.Subscription.Cycle,
			GatewaySubscriptionID: sub.ID,
			Status:                models.TransactionStatusPending,
			StartedAt:             started,
			ExpiresAt:             req.Subscription.Cycle.Period(started),
		}
		if err := s.Store.CreateSubscription(ctx, record); err != nil {
			log.Printf("checkout: subscription write failed sub=%s err=%v", sub.ID, err)
			return persistenceWarning
		}
	}
	return ""
}

func (s *Service) shapeResponse(amt billing.Amount, instrument models.Instrument, payment *gateway.Payment) *models.CheckoutResponse {
	resp := &models.CheckoutResponse{
		Success:         true,
		GatewayChargeID: payment.ID,
		Status:          payment.Status,
		Value:           amt.Value,
		Instrument:      instrument,
	}
	if resp.Status == "" {
		resp.Status = "PENDING"
	}

	due := parseGatewayDate(payment.DueDate, s.Now())
	switch instrument {
	case models.InstrumentPix:
		expiry := due
		if payment.PixExpiresAt != nil {
			expiry = *payment.PixExpiresAt
		}
		resp.Pix = &models.PixDetails{PayableCode: payment.PixPayload, ExpiresAt: expiry}
	case models.InstrumentBoleto:
		resp.Boleto = &models.BoletoDetails{
			DocumentURL: payment.BankSlipURL,
			BarCode:     payment.IdentificationField,
			DueDate:     due,
		}
	case models.InstrumentCreditCard, models.InstrumentDebitCard:
		resp.Card = &models.CardDetails{
			Installments: payment.InstallmentCount,
			ReceiptURL:   payment.TransactionReceiptURL,
		}
	}
	return resp
}

func parseGatewayDate(value string, fallback time.Time) time.Time {
	if t, err := time.Parse(gateway.DateLayout, value); err == nil {
		return t
	}
	return fallback
}
