package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a third-party site whose visitors answer a cookie-consent banner.
type Client struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UniqueID         string    `gorm:"type:varchar(16);not null;uniqueIndex" json:"uniqueId"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Website          string    `gorm:"type:varchar(500);not null" json:"website"`
	IsCookieApproved bool      `gorm:"not null;default:false" json:"isCookieApproved"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeSave hook for validation
func (c *Client) BeforeSave(tx *gorm.DB) error {
	if c.UniqueID == "" || c.Name == "" || c.Email == "" || c.Website == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Client) TableName() string {
	return "clients"
}
