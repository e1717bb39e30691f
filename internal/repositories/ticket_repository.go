package repositories

import (
	"context"
	stderrors "errors"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *TicketRepository) WithTx(tx *gorm.DB) *TicketRepository {
	return &TicketRepository{db: tx}
}

func withTicketRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Raffle").Preload("User")
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error; err != nil {
		return mapError(err, "Ticket not found", "failed to create ticket")
	}
	return nil
}

// FindUserTicket returns the user's ticket for a raffle, or nil if none exists
func (r *TicketRepository) FindUserTicket(ctx context.Context, userID, raffleID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Clauses(lockForUpdate).
		Where("user_id = ? AND raffle_id = ?", userID, raffleID).
		First(&ticket).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get ticket")
	}
	return &ticket, nil
}

func (r *TicketRepository) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ticket).Error; err != nil {
		return mapError(err, "Ticket not found", "failed to update ticket")
	}
	return nil
}

// GetTicketByID retrieves a ticket with raffle and user expanded
func (r *TicketRepository) GetTicketByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := withTicketRelations(r.db.WithContext(ctx)).First(&ticket, id).Error; err != nil {
		return nil, mapError(err, "Ticket not found", "failed to get ticket")
	}
	return &ticket, nil
}

func (r *TicketRepository) ListTicketsByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := withTicketRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list tickets")
	}
	return tickets, nil
}

func (r *TicketRepository) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := withTicketRelations(r.db.WithContext(ctx)).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list tickets")
	}
	return tickets, nil
}

func (r *TicketRepository) DeleteTicket(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Ticket{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete ticket")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "Ticket not found")
	}
	return nil
}
