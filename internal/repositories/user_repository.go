package repositories

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(user)
	if result.Error != nil {
		return mapError(result.Error, "User not found.", "failed to create user")
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapError(err, "User not found.", "failed to get user")
	}
	return &user, nil
}

// GetUserByIDForUpdate retrieves a user and locks the row until the transaction ends
func (r *UserRepository) GetUserByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Clauses(lockForUpdate).First(&user, id).Error; err != nil {
		return nil, mapError(err, "User not found.", "failed to get user")
	}
	return &user, nil
}

// FindUsersByUsername returns every account with the username, across roles
func (r *UserRepository) FindUsersByUsername(ctx context.Context, username string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to find users")
	}
	return users, nil
}

// UsernameTaken checks (username, role) uniqueness, ignoring excludeID
func (r *UserRepository) UsernameTaken(ctx context.Context, username, role string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ? AND role = ?", username, role)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check username")
	}
	return count > 0, nil
}

// ListUsers returns all users, newest first
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}

// UpdateUser persists every column of the user
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return mapError(err, "User not found.", "failed to update user")
	}
	return nil
}

// DeleteUser removes a user; tickets and ledger entries cascade
func (r *UserRepository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "User not found.")
	}
	return nil
}
