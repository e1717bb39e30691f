package services

import (
	"context"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/reports"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/pkg/errors"
)

type TicketService struct {
	repo *repositories.TicketRepository
}

func NewTicketService(repo *repositories.TicketRepository) *TicketService {
	return &TicketService{repo: repo}
}

func (s *TicketService) ListUserTickets(ctx context.Context, userID uint) ([]models.Ticket, error) {
	tickets, err := s.repo.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "No tickets found for this user")
	}
	return tickets, nil
}

func (s *TicketService) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "No tickets found")
	}
	return tickets, nil
}

func (s *TicketService) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	return s.repo.GetTicketByID(ctx, id)
}

func (s *TicketService) DeleteTicket(ctx context.Context, id uint) error {
	return s.repo.DeleteTicket(ctx, id)
}

// ExportTickets renders every ticket as an xlsx workbook.
func (s *TicketService) ExportTickets(ctx context.Context) ([]byte, error) {
	tickets, err := s.repo.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	data, err := reports.TicketsWorkbook(tickets)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build tickets workbook")
	}
	return data, nil
}
