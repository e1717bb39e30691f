package repositories

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

// CreateTransaction appends a ledger entry
func (r *TransactionRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(transaction).Error; err != nil {
		return mapError(err, "Transaction not found.", "failed to create transaction")
	}
	return nil
}

func (r *TransactionRepository) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).Preload("User").First(&transaction, id).Error; err != nil {
		return nil, mapError(err, "Transaction not found.", "failed to get transaction")
	}
	return &transaction, nil
}

// ListTransactions returns the whole ledger, newest first
func (r *TransactionRepository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list transactions")
	}
	return transactions, nil
}

// GetTransactionHistory retrieves user's transaction history
func (r *TransactionRepository) GetTransactionHistory(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get transaction history")
	}
	return transactions, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete transaction")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Transaction not found.")
	}
	return nil
}
