package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "Invalid username or password."

type CreateUserInput struct {
	Username             string           `json:"username"`
	Password             string           `json:"password"`
	Role                 string           `json:"role"`
	Balance              *decimal.Decimal `json:"balance"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
}

// UpdateUserInput holds optional changes; nil fields are left as they are.
type UpdateUserInput struct {
	Username             *string          `json:"username"`
	Role                 *string          `json:"role"`
	Balance              *decimal.Decimal `json:"balance"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	IsActive             *bool            `json:"isActive"`
}

type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	transactor   *repositories.Transactor
	users        *repositories.UserRepository
	transactions *repositories.TransactionRepository
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewUserService(
	transactor *repositories.Transactor,
	users *repositories.UserRepository,
	transactions *repositories.TransactionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *UserService {
	return &UserService{
		transactor:   transactor,
		users:        users,
		transactions: transactions,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := security.SanitizeString(input.Username)
	if username == "" || input.Password == "" || input.Role == "" {
		return nil, errors.New(errors.ErrCodeValidation, "All fields are required: username, password, role.")
	}
	if !models.IsValidRole(input.Role) {
		return nil, errors.New(errors.ErrCodeValidation, "Invalid role specified.")
	}

	taken, err := s.users.UsernameTaken(ctx, username, input.Role, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, usernameExists(input.Role)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	user := &models.User{
		Username: username,
		Password: hash,
		Role:     input.Role,
		IsActive: true,
	}
	if input.Balance != nil {
		if input.Balance.IsNegative() {
			return nil, errors.New(errors.ErrCodeValidation, "Balance cannot be negative.")
		}
		user.Balance = *input.Balance
	}
	if input.Role == models.RoleAgent {
		commission := models.DefaultAgentCommission
		if input.CommissionPercentage != nil {
			commission = *input.CommissionPercentage
		}
		user.CommissionPercentage = &commission
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.HasCode(err, errors.ErrCodeAlreadyExists) {
			return nil, usernameExists(input.Role)
		}
		return nil, err
	}

	logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the password against every account sharing the username and
// issues a token for the first active match.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errors.New(errors.ErrCodeValidation, "Username and password are required.")
	}

	candidates, err := s.users.FindUsersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		user := &candidates[i]
		if !security.CheckPassword(user.Password, password) || !user.IsActive {
			continue
		}
		token, err := security.GenerateJWT(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to issue token")
		}
		return &LoginResult{Token: token, User: user}, nil
	}

	logger.Debug("Login rejected", "username", username)
	return nil, errors.New(errors.ErrCodeUnauthorized, msgInvalidCredentials)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// UpdateUser applies the changes in one transaction. A balance change is
// recorded in the ledger as a credit or debit of the difference.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	var updated *models.User

	err := s.transactor.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		user, err := users.GetUserByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if input.Username != nil {
			username := security.SanitizeString(*input.Username)
			if username == "" {
				return errors.New(errors.ErrCodeValidation, "Username cannot be empty.")
			}
			user.Username = username
		}
		if input.Role != nil {
			if !models.IsValidRole(*input.Role) {
				return errors.New(errors.ErrCodeValidation, "Invalid role specified.")
			}
			user.Role = *input.Role
		}
		if input.Username != nil || input.Role != nil {
			taken, err := users.UsernameTaken(ctx, user.Username, user.Role, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return usernameExists(user.Role)
			}
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if user.Role == models.RoleAgent {
			switch {
			case input.CommissionPercentage != nil:
				commission := *input.CommissionPercentage
				user.CommissionPercentage = &commission
			case user.CommissionPercentage == nil:
				commission := models.DefaultAgentCommission
				user.CommissionPercentage = &commission
			}
		}

		var adjustment *models.Transaction
		if input.Balance != nil {
			if input.Balance.IsNegative() {
				return errors.New(errors.ErrCodeValidation, "Balance cannot be negative.")
			}
			delta := input.Balance.Sub(user.Balance)
			if !delta.IsZero() {
				adjustment = &models.Transaction{
					UserID:      user.ID,
					Amount:      delta.Abs(),
					Type:        models.TxTypeCredit,
					Description: fmt.Sprintf("Balance adjusted for user: %s", user.Username),
				}
				if delta.IsNegative() {
					adjustment.Type = models.TxTypeDebit
				}
			}
			user.Balance = *input.Balance
		}

		if err := users.UpdateUser(ctx, user); err != nil {
			if errors.HasCode(err, errors.ErrCodeAlreadyExists) {
				return usernameExists(user.Role)
			}
			return err
		}
		if adjustment != nil {
			if err := s.transactions.WithTx(tx).CreateTransaction(ctx, adjustment); err != nil {
				return err
			}
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User updated", "user_id", id)
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	logger.Info("User deleted", "user_id", id)
	return nil
}

func usernameExists(role string) error {
	return errors.New(errors.ErrCodeAlreadyExists, fmt.Sprintf("Username already exists for the role: %s.", strings.TrimSpace(role)))
}
