package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxTicketsPerRaffle caps a user's ticket quantity in a single raffle.
const MaxTicketsPerRaffle = 5

// Ticket aggregates every purchase one user made in one raffle.
type Ticket struct {
	ID              uint                     `gorm:"primaryKey" json:"id"`
	UserID          uint                     `gorm:"not null;uniqueIndex:idx_tickets_user_raffle" json:"userId"`
	User            *User                    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RaffleID        uint                     `gorm:"not null;uniqueIndex:idx_tickets_user_raffle;index" json:"raffleId"`
	Raffle          *Raffle                  `gorm:"foreignKey:RaffleID;constraint:OnDelete:CASCADE" json:"raffle,omitempty"`
	SelectedNumbers datatypes.JSONSlice[int] `json:"selectedNumbers"`
	Quantity        int                      `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal          `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt       time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeSave hook for validation
func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	if t.UserID == 0 || t.RaffleID == 0 {
		return gorm.ErrInvalidData
	}
	if t.Quantity < 1 || t.Price.IsNegative() {
		return gorm.ErrInvalidData
	}
	if t.SelectedNumbers == nil {
		t.SelectedNumbers = datatypes.JSONSlice[int]{}
	}
	return nil
}

func (Ticket) TableName() string {
	return "tickets"
}
