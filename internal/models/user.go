package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Balances and prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`
	Username             string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username_role" json:"username"`
	Password             string           `gorm:"type:varchar(255);not null" json:"-"`
	Role                 string           `gorm:"type:varchar(10);not null;uniqueIndex:idx_users_username_role;index" json:"role"`
	Balance              decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	CommissionPercentage *decimal.Decimal `gorm:"type:numeric(5,2)" json:"commissionPercentage,omitempty"`
	IsActive             bool             `gorm:"not null;default:true" json:"isActive"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

const (
	RolePlayer = "player"
	RoleAgent  = "agent"
	RoleAdmin  = "admin"
)

// DefaultAgentCommission is applied to agents created without a percentage.
var DefaultAgentCommission = decimal.NewFromInt(10)

func IsValidRole(role string) bool {
	switch role {
	case RolePlayer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the user may manage raffles, clients and tickets.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAgent
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Username == "" || u.Password == "" {
		return gorm.ErrInvalidData
	}
	if !IsValidRole(u.Role) {
		return gorm.ErrInvalidData
	}
	if u.Role != RoleAgent {
		u.CommissionPercentage = nil
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
