package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Raffle struct {
	ID                        uint                     `gorm:"primaryKey" json:"id"`
	Name                      string                   `gorm:"type:varchar(255);not null" json:"name"`
	Type                      string                   `gorm:"type:varchar(100);not null" json:"type"`
	Photo                     string                   `gorm:"type:varchar(500);not null" json:"photo"`
	Numbers                   datatypes.JSONSlice[int] `gorm:"not null" json:"numbers"`
	LaunchDate                time.Time                `gorm:"not null" json:"launchDate"`
	DrawDate                  time.Time                `gorm:"not null" json:"drawDate"`
	Entrants                  int                      `gorm:"not null;default:0" json:"entrants"`
	TotalEntriesAllowed       int                      `gorm:"not null" json:"totalEntriesAllowed"`
	UserSelectedNumbers       datatypes.JSONSlice[int] `json:"userSelectedNumbers"`
	TicketPrice               decimal.Decimal          `gorm:"type:numeric(12,2);not null" json:"ticketPrice"`
	IsUniqueNumberSelection   bool                     `gorm:"not null;default:false" json:"isUniqueNumberSelection"`
	IsMultipleNumberSelection bool                     `gorm:"not null;default:false" json:"isMultipleNumberSelection"`
	CreatedByID               *uint                    `gorm:"column:created_by;index" json:"-"`
	CreatedBy                 *User                    `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"createdBy,omitempty"`
	IsApproved                bool                     `gorm:"not null;default:false" json:"isApproved"`
	CreatedAt                 time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt                 time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsFull reports whether the raffle has reached its entrant capacity.
func (r *Raffle) IsFull() bool {
	return r.Entrants >= r.TotalEntriesAllowed
}

// HasSelectedNumber reports whether n was already picked in a purchase.
func (r *Raffle) HasSelectedNumber(n int) bool {
	for _, picked := range r.UserSelectedNumbers {
		if picked == n {
			return true
		}
	}
	return false
}

// BeforeSave hook for validation
func (r *Raffle) BeforeSave(tx *gorm.DB) error {
	if r.Name == "" || r.Type == "" {
		return gorm.ErrInvalidData
	}
	if len(r.Numbers) == 0 {
		return gorm.ErrInvalidData
	}
	if !r.LaunchDate.Before(r.DrawDate) {
		return gorm.ErrInvalidData
	}
	if r.TotalEntriesAllowed <= 0 || !r.TicketPrice.IsPositive() {
		return gorm.ErrInvalidData
	}
	if r.Entrants < 0 {
		return gorm.ErrInvalidData
	}
	if r.UserSelectedNumbers == nil {
		r.UserSelectedNumbers = datatypes.JSONSlice[int]{}
	}
	return nil
}

func (Raffle) TableName() string {
	return "raffles"
}
