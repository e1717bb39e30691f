package repositories

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RaffleRepository struct {
	db *gorm.DB
}

func NewRaffleRepository(db *gorm.DB) *RaffleRepository {
	return &RaffleRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *RaffleRepository) WithTx(tx *gorm.DB) *RaffleRepository {
	return &RaffleRepository{db: tx}
}

// withCreator expands createdBy to its public fields only.
func withCreator(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "username", "role")
	})
}

func (r *RaffleRepository) CreateRaffle(ctx context.Context, raffle *models.Raffle) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(raffle).Error; err != nil {
		return mapError(err, "Raffle not found.", "failed to create raffle")
	}
	return nil
}

// GetRaffleByID retrieves a raffle with its creator
func (r *RaffleRepository) GetRaffleByID(ctx context.Context, id uint) (*models.Raffle, error) {
	var raffle models.Raffle
	if err := withCreator(r.db.WithContext(ctx)).First(&raffle, id).Error; err != nil {
		return nil, mapError(err, "Raffle not found.", "failed to get raffle")
	}
	return &raffle, nil
}

// GetRaffleByIDForUpdate retrieves a raffle and locks the row until the transaction ends
func (r *RaffleRepository) GetRaffleByIDForUpdate(ctx context.Context, id uint) (*models.Raffle, error) {
	var raffle models.Raffle
	if err := r.db.WithContext(ctx).Clauses(lockForUpdate).First(&raffle, id).Error; err != nil {
		return nil, mapError(err, "Raffle not found.", "failed to get raffle")
	}
	return &raffle, nil
}

func (r *RaffleRepository) ListRaffles(ctx context.Context) ([]models.Raffle, error) {
	var raffles []models.Raffle
	if err := withCreator(r.db.WithContext(ctx)).Order("created_at DESC").Find(&raffles).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list raffles")
	}
	return raffles, nil
}

func (r *RaffleRepository) UpdateRaffle(ctx context.Context, raffle *models.Raffle) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(raffle).Error; err != nil {
		return mapError(err, "Raffle not found.", "failed to update raffle")
	}
	return nil
}

// raffleDetailColumns are the columns staff may edit. Entrants and the
// selected-number pool belong to the purchase flow.
var raffleDetailColumns = []string{
	"name", "type", "photo", "numbers", "launch_date", "draw_date",
	"total_entries_allowed", "ticket_price", "is_unique_number_selection",
	"is_multiple_number_selection", "is_approved", "updated_at",
}

// UpdateRaffleDetails writes only the editable columns, so purchases that
// committed since the raffle was read keep their counters.
func (r *RaffleRepository) UpdateRaffleDetails(ctx context.Context, raffle *models.Raffle) error {
	result := r.db.WithContext(ctx).Model(raffle).Omit(clause.Associations).Select(raffleDetailColumns).Updates(raffle)
	if result.Error != nil {
		return mapError(result.Error, "Raffle not found.", "failed to update raffle")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Raffle not found.")
	}
	return nil
}

func (r *RaffleRepository) DeleteRaffle(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Raffle{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete raffle")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Raffle not found.")
	}
	return nil
}
