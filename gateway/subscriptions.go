package gateway

import "context"

type SubscriptionCycle string

const (
	SubscriptionCycleMonthly SubscriptionCycle = "MONTHLY"
	SubscriptionCycleYearly  SubscriptionCycle = "YEARLY"
)

type CreateSubscriptionRequest struct {
	Customer          string            `json:"customer"`
	BillingType       BillingType       `json:"billingType"`
	Value             float64           `json:"value"`
	NextDueDate       string            `json:"nextDueDate"`
	Cycle             SubscriptionCycle `json:"cycle"`
	Description       string            `json:"description,omitempty"`
	EndDate           string            `json:"endDate,omitempty"`
	ExternalReference string            `json:"externalReference,omitempty"`
}

// Subscription is the gateway's recurring resource. FirstPayment is only set
// when the gateway auto-issued the first invoice; when nil the caller must
// bootstrap one explicitly.
type Subscription struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Cycle        SubscriptionCycle `json:"cycle"`
	NextDueDate  string            `json:"nextDueDate"`
	PaymentLink  string            `json:"paymentLink,omitempty"`
	FirstPayment *Payment          `json:"firstPayment,omitempty"`
}

func (c *Client) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	sub := &Subscription{}
	if err := c.post(ctx, "/subscriptions", req, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
