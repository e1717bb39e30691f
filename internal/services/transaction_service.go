package services

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/reports"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/utils"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 255

type CreateTransactionInput struct {
	UserID      *uint           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

// TransactionService manages ledger entries. Recording an entry here does
// not move a balance.
type TransactionService struct {
	repo  *repositories.TransactionRepository
	users *repositories.UserRepository
}

func NewTransactionService(repo *repositories.TransactionRepository, users *repositories.UserRepository) *TransactionService {
	return &TransactionService{repo: repo, users: users}
}

// CreateTransaction records an entry for the caller, or for input.UserID when
// the caller is staff.
func (s *TransactionService) CreateTransaction(ctx context.Context, caller *models.User, input CreateTransactionInput) (*models.Transaction, error) {
	userID := caller.ID
	if input.UserID != nil && *input.UserID != caller.ID {
		if !caller.IsStaff() {
			return nil, errors.New(errors.ErrCodeForbidden, "You can only record transactions for yourself.")
		}
		userID = *input.UserID
	}
	if !input.Amount.IsPositive() {
		return nil, errors.New(errors.ErrCodeValidation, "Amount must be greater than zero.")
	}
	if !models.IsValidTxType(input.Type) {
		return nil, errors.New(errors.ErrCodeValidation, "Type must be either credit or debit.")
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: utils.TrimToLength(security.SanitizeText(input.Description), maxDescriptionLength),
	}
	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

func (s *TransactionService) ListUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	return s.repo.GetTransactionHistory(ctx, userID)
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.repo.GetTransactionByID(ctx, id)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uint) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *TransactionService) ExportTransactions(ctx context.Context) ([]byte, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	data, err := reports.TransactionsWorkbook(transactions)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build transactions workbook")
	}
	return data, nil
}
