// Package repository wraps gorm access for the checkout flow.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPlanNotFound = errors.New("plan not found")
)

// Store aggregates the handful of reads and writes the orchestrator performs.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) PlanByID(ctx context.Context, id uint) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.WithContext(ctx).Where("active = ?", true).First(&plan, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

func (s *Store) CreateSubscription(ctx context.Context, sub *models.UserSubscription) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

// GrantRole is idempotent: granting a role the user already holds is a no-op.
func (s *Store) GrantRole(ctx context.Context, userID uint, role string) error {
	grant := models.UserRole{UserID: userID, Role: role}
	return s.db.WithContext(ctx).
		Where(&models.UserRole{UserID: userID, Role: role}).
		FirstOrCreate(&grant).Error
}
