package checkout_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
	"github.com/objetivatech/convergencia-empreendedora-sub000/repository"
)

// fakeGateway is an in-memory stand-in for the payment gateway client.
type fakeGateway struct {
	mu sync.Mutex

	customersByEmail map[string]*gateway.Customer
	nextCustomer     int
	nextPayment      int
	nextSubscription int

	lookupCalls         int
	createCustomerCalls int
	paymentRequests     []gateway.CreatePaymentRequest
	subscriptionReqs    []gateway.CreateSubscriptionRequest

	lookupErr         error
	createCustomerErr error
	paymentErr        error
	subscriptionErr   error

	// subscriptionFirstPayment, when set, simulates a gateway that issues
	// the first invoice together with the subscription.
	subscriptionFirstPayment *gateway.Payment

	// afterLookup, when set, runs between lookup and create. Used to
	// exercise the lookup/create race window.
	afterLookup func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{customersByEmail: map[string]*gateway.Customer{}}
}

func (f *fakeGateway) FindCustomerByEmail(ctx context.Context, email string) (*gateway.Customer, error) {
	f.mu.Lock()
	f.lookupCalls++
	customer := f.customersByEmail[email]
	err := f.lookupErr
	hook := f.afterLookup
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil {
		hook()
	}
	return customer, nil
}

func (f *fakeGateway) CreateCustomer(ctx context.Context, req gateway.CreateCustomerRequest) (*gateway.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createCustomerErr != nil {
		return nil, f.createCustomerErr
	}
	f.createCustomerCalls++
	f.nextCustomer++
	customer := &gateway.Customer{
		ID:      fmt.Sprintf("cus_%d", f.nextCustomer),
		Name:    req.Name,
		Email:   req.Email,
		CpfCnpj: req.CpfCnpj,
	}
	f.customersByEmail[req.Email] = customer
	return customer, nil
}

func (f *fakeGateway) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (*gateway.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	f.paymentRequests = append(f.paymentRequests, req)
	f.nextPayment++

	payment := &gateway.Payment{
		ID:          fmt.Sprintf("pay_%d", f.nextPayment),
		Status:      "PENDING",
		Value:       req.Value,
		BillingType: req.BillingType,
		DueDate:     req.DueDate,
	}
	switch req.BillingType {
	case gateway.BillingTypePix:
		payment.PixPayload = "00020126pixcopiaecola" + payment.ID
	case gateway.BillingTypeBoleto:
		payment.BankSlipURL = "https://gw.example/boleto/" + payment.ID
		payment.IdentificationField = "23790.00000 " + payment.ID
	case gateway.BillingTypeCreditCard, gateway.BillingTypeDebitCard:
		payment.Status = "CONFIRMED"
		payment.InstallmentCount = req.InstallmentCount
		payment.TransactionReceiptURL = "https://gw.example/receipt/" + payment.ID
	}
	return payment, nil
}

func (f *fakeGateway) CreateSubscription(ctx context.Context, req gateway.CreateSubscriptionRequest) (*gateway.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscriptionErr != nil {
		return nil, f.subscriptionErr
	}
	f.subscriptionReqs = append(f.subscriptionReqs, req)
	f.nextSubscription++
	return &gateway.Subscription{
		ID:           fmt.Sprintf("sub_%d", f.nextSubscription),
		Status:       "ACTIVE",
		Cycle:        req.Cycle,
		NextDueDate:  req.NextDueDate,
		FirstPayment: f.subscriptionFirstPayment,
	}, nil
}

// fakeStore is an in-memory checkout.Store.
type fakeStore struct {
	mu sync.Mutex

	users map[uint]*models.User
	plans map[uint]*models.Plan

	transactions  []*models.Transaction
	subscriptions []*models.UserSubscription
	roles         map[uint][]string

	transactionErr  error
	subscriptionErr error
	roleErr         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[uint]*models.User{
			1: {ID: 1, DisplayName: "Maria Silva", Email: "maria@example.com", CpfCnpj: "12345678900"},
		},
		plans: map[uint]*models.Plan{
			10: {
				ID:             10,
				Name:           "Growth",
				MonthlyPrice:   decimal.RequireFromString("79.90"),
				SemestralPrice: decimal.RequireFromString("419.40"),
				YearlyPrice:    decimal.RequireFromString("799.00"),
				Active:         true,
			},
		},
		roles: map[uint][]string{},
	}
}

func (f *fakeStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) PlanByID(ctx context.Context, id uint) (*models.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}
	return plan, nil
}

func (f *fakeStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transactionErr != nil {
		return f.transactionErr
	}
	tx.ID = uint(len(f.transactions) + 1)
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeStore) CreateSubscription(ctx context.Context, sub *models.UserSubscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscriptionErr != nil {
		return f.subscriptionErr
	}
	sub.ID = uint(len(f.subscriptions) + 1)
	f.subscriptions = append(f.subscriptions, sub)
	return nil
}

func (f *fakeStore) GrantRole(ctx context.Context, userID uint, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return f.roleErr
	}
	for _, held := range f.roles[userID] {
		if held == role {
			return nil
		}
	}
	f.roles[userID] = append(f.roles[userID], role)
	return nil
}
