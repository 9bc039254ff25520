package models

import (
	"time"

	"gorm.io/gorm"
)

// Role granted to subscribers so they can manage a storefront listing in the
// community directory.
const RoleEmpreendedora = "empreendedora"

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	DisplayName string         `json:"display_name"`
	Email       string         `gorm:"uniqueIndex" json:"email"`
	CpfCnpj     string         `json:"cpf_cnpj"`
	Phone       string         `json:"phone,omitempty"`

	Roles []UserRole `gorm:"foreignKey:UserID" json:"roles,omitempty"`
}

// UserRole is one capability attached to an account. The composite unique
// index makes role grants naturally idempotent.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_role" json:"user_id"`
	Role      string    `gorm:"uniqueIndex:idx_user_role;size:40" json:"role"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}
