package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an append-only ledger entry for a balance change.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"userId"`
	User        *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`
}

// Transaction type constants
const (
	TxTypeCredit = "credit"
	TxTypeDebit  = "debit"
)

func IsValidTxType(txType string) bool {
	return txType == TxTypeCredit || txType == TxTypeDebit
}

// BeforeSave hook for validation
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	if t.UserID == 0 || !IsValidTxType(t.Type) {
		return gorm.ErrInvalidData
	}
	if !t.Amount.IsPositive() {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Transaction) TableName() string {
	return "transactions"
}
