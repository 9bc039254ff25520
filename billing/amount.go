// Package billing computes what a checkout request is worth. It is pure: no
// clock, no I/O, so it runs before anything reaches the gateway.
package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

var ErrInvalidRequest = errors.New("invalid checkout amount")

// Amount is the money value of one checkout plus its display description.
// Description is for humans and audit logs only, never for computation.
type Amount struct {
	Value       decimal.Decimal
	Description string
}

var six = decimal.NewFromInt(6)

// Calculate maps a checkout request to its charge amount. plan must be the
// catalog row referenced by a subscription request and may be nil otherwise.
func Calculate(req *models.CheckoutRequest, plan *models.Plan) (Amount, error) {
	switch req.Kind {
	case models.KindSubscription:
		return subscriptionAmount(req.Subscription, plan)
	case models.KindProduct:
		return productAmount(req.Product)
	case models.KindDonation:
		if req.Donation == nil {
			return Amount{}, fmt.Errorf("%w: missing donation payload", ErrInvalidRequest)
		}
		return fixedAmount(req.Donation.Amount, "Doação - Convergência Empreendedora")
	case models.KindCommunity:
		if req.Community == nil {
			return Amount{}, fmt.Errorf("%w: missing community payload", ErrInvalidRequest)
		}
		return fixedAmount(req.Community.Amount, "Comunidade - Convergência Empreendedora")
	}
	return Amount{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, req.Kind)
}

func subscriptionAmount(order *models.SubscriptionOrder, plan *models.Plan) (Amount, error) {
	if order == nil || plan == nil {
		return Amount{}, fmt.Errorf("%w: missing subscription payload", ErrInvalidRequest)
	}

	var value decimal.Decimal
	switch order.Cycle {
	case models.CycleMonthly:
		value = plan.MonthlyPrice
	case models.CycleYearly:
		value = plan.YearlyPrice
	case models.CycleSemestral:
		// Semestral plans are billed monthly at one sixth of the full price.
		value = plan.SemestralPrice.Div(six)
	default:
		return Amount{}, fmt.Errorf("%w: unknown billing cycle %q", ErrInvalidRequest, order.Cycle)
	}

	if !value.IsPositive() {
		return Amount{}, fmt.Errorf("%w: plan %q has no %s price", ErrInvalidRequest, plan.Name, order.Cycle)
	}
	return Amount{
		Value:       value,
		Description: plan.Name + " - " + order.Cycle.Label(),
	}, nil
}

func productAmount(order *models.ProductOrder) (Amount, error) {
	if order == nil || len(order.Items) == 0 {
		return Amount{}, fmt.Errorf("%w: product order needs at least one item", ErrInvalidRequest)
	}

	total := decimal.Zero
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return Amount{}, fmt.Errorf("%w: item %q quantity must be at least 1", ErrInvalidRequest, item.Name)
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		names = append(names, item.Name)
	}
	if !total.IsPositive() {
		return Amount{}, fmt.Errorf("%w: order total must be positive", ErrInvalidRequest)
	}
	return Amount{
		Value:       total,
		Description: "Compra: " + strings.Join(names, ", "),
	}, nil
}

func fixedAmount(value decimal.Decimal, description string) (Amount, error) {
	if !value.IsPositive() {
		return Amount{}, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	return Amount{Value: value, Description: description}, nil
}
