package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction statuses mirror the gateway vocabulary. A row is written as
// "pending" by the checkout flow and only a later reconciliation process
// moves it forward.
const (
	TransactionStatusPending = "pending"
)

// Transaction is the local ledger row for one gateway charge. One row per
// successful orchestration run; never written when the gateway call failed.
type Transaction struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
	UserID          uint              `gorm:"index" json:"user_id"`
	GatewayChargeID string            `gorm:"uniqueIndex" json:"gateway_charge_id"`
	Value           decimal.Decimal   `gorm:"type:decimal(10,2)" json:"value"`
	Currency        string            `gorm:"size:3;default:BRL" json:"currency"`
	Kind            CheckoutKind      `gorm:"size:20;index" json:"kind"`
	Instrument      Instrument        `gorm:"size:20;index" json:"instrument"`
	Status          string            `gorm:"size:20;index" json:"status"`
	DueDate         time.Time         `json:"due_date"`
	RawPayload      []byte            `json:"-"`
	Meta            datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// UserSubscription records a recurring membership locally. Written in the
// same run as its Transaction, only after the gateway subscription and its
// first payable charge both exist.
type UserSubscription struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	UserID                uint           `gorm:"index" json:"user_id"`
	PlanID                uint           `gorm:"index" json:"plan_id"`
	Cycle                 BillingCycle   `gorm:"size:20" json:"cycle"`
	GatewaySubscriptionID string         `gorm:"uniqueIndex" json:"gateway_subscription_id"`
	Status                string         `gorm:"size:20;index" json:"status"`
	StartedAt             time.Time      `json:"started_at"`
	ExpiresAt             time.Time      `json:"expires_at"`

	Plan *Plan `gorm:"foreignKey:PlanID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
