package checkout

import (
	"context"

	"github.com/objetivatech/convergencia-empreendedora-sub000/billing"
	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

// buildSubscription creates the recurring resource and makes sure a payable
// charge exists for it. The gateway does not always issue the first invoice
// together with the subscription; when it does not, an explicit bootstrap
// charge is created referencing the subscription id.
//
// If the bootstrap step fails after the subscription was created, the run
// fails and the gateway subscription is left in place; no compensating
// cancellation is attempted here.
func (s *Service) buildSubscription(ctx context.Context, customerID string, amt billing.Amount, req *models.CheckoutRequest) (*gateway.Subscription, *gateway.Payment, error) {
	billingType, err := billingTypeFor(req.Instrument)
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	subReq := gateway.CreateSubscriptionRequest{
		Customer:    customerID,
		BillingType: billingType,
		Value:       amt.Value.InexactFloat64(),
		NextDueDate: now.Add(bootstrapWindow).Format(gateway.DateLayout),
		Description: amt.Description,
	}

	switch req.Subscription.Cycle {
	case models.CycleYearly:
		subReq.Cycle = gateway.SubscriptionCycleYearly
	case models.CycleSemestral:
		// The gateway has no semestral cycle: billed monthly at one sixth
		// of the semestral price, ending six periods out.
		subReq.Cycle = gateway.SubscriptionCycleMonthly
		subReq.EndDate = now.AddDate(0, 6, 0).Format(gateway.DateLayout)
	default:
		subReq.Cycle = gateway.SubscriptionCycleMonthly
	}

	sub, err := s.Gateway.CreateSubscription(ctx, subReq)
	if err != nil {
		return nil, nil, wrapGatewayErr(err)
	}

	if sub.FirstPayment != nil {
		return sub, sub.FirstPayment, nil
	}

	payment, err := s.buildCharge(ctx, customerID, amt, req, chargeOptions{
		ExternalReference: sub.ID,
		DueDate:           now.Add(bootstrapWindow),
	})
	if err != nil {
		return nil, nil, err
	}
	return sub, payment, nil
}
