package repositories

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return mapError(err, "Client not found.", "failed to create client")
	}
	return nil
}

func (r *ClientRepository) GetClientByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, mapError(err, "Client not found.", "failed to get client")
	}
	return &client, nil
}

// GetClientByUniqueID looks a client up by the code embedded in its banner script
func (r *ClientRepository) GetClientByUniqueID(ctx context.Context, uniqueID string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("unique_id = ?", uniqueID).First(&client).Error; err != nil {
		return nil, mapError(err, "Client not found.", "failed to get client")
	}
	return &client, nil
}

func (r *ClientRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Client{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check client email")
	}
	return count > 0, nil
}

func (r *ClientRepository) UniqueIDExists(ctx context.Context, uniqueID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Where("unique_id = ?", uniqueID).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check client code")
	}
	return count > 0, nil
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list clients")
	}
	return clients, nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return mapError(err, "Client not found.", "failed to update client")
	}
	return nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete client")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Client not found.")
	}
	return nil
}
