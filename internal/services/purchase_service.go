package services

import (
	"context"
	"fmt"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/notify"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/mroshb/raffle_api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase outcomes. Only OutcomeCreated and OutcomeUpdated mutate state.
const (
	OutcomeCreated             = "created"
	OutcomeUpdated             = "updated"
	OutcomeRaffleFull          = "raffle_full"
	OutcomeInsufficientBalance = "insufficient_balance"
	OutcomeMaxTickets          = "max_tickets"
	OutcomeNumberTaken         = "number_taken"
)

const (
	msgTicketCreated       = "Ticket purchased successfully"
	msgTicketUpdated       = "Ticket quantity updated successfully"
	msgRaffleFull          = "Raffle is full, no more entries allowed"
	msgInsufficientBalance = "Insufficient balance"
	msgMaxTickets          = "You can only buy a maximum of 5 tickets per raffle"
	msgNumberTaken         = "Selected number is already taken"
)

type PurchaseRequest struct {
	UserID          uint
	RaffleID        uint
	SelectedNumbers []int
	Quantity        int
}

type PurchaseResult struct {
	Outcome string
	Message string
	Ticket  *models.Ticket
	Balance decimal.Decimal
}

// Completed reports whether the purchase was applied.
func (r *PurchaseResult) Completed() bool {
	return r.Outcome == OutcomeCreated || r.Outcome == OutcomeUpdated
}

type PurchaseService struct {
	transactor   *repositories.Transactor
	users        *repositories.UserRepository
	raffles      *repositories.RaffleRepository
	tickets      *repositories.TicketRepository
	transactions *repositories.TransactionRepository
	notifier     notify.Notifier
}

func NewPurchaseService(
	transactor *repositories.Transactor,
	users *repositories.UserRepository,
	raffles *repositories.RaffleRepository,
	tickets *repositories.TicketRepository,
	transactions *repositories.TransactionRepository,
	notifier notify.Notifier,
) *PurchaseService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &PurchaseService{
		transactor:   transactor,
		users:        users,
		raffles:      raffles,
		tickets:      tickets,
		transactions: transactions,
		notifier:     notifier,
	}
}

// Purchase buys quantity tickets for the user. Balance, ticket, raffle and
// ledger change together or not at all; business rule rejections come back
// as a result with a non-completed outcome and leave everything untouched.
func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.Quantity < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "Quantity must be at least 1")
	}

	var (
		result *PurchaseResult
		event  notify.PurchaseEvent
		raffle *models.Raffle
	)

	err := s.transactor.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		raffles := s.raffles.WithTx(tx)
		tickets := s.tickets.WithTx(tx)
		ledger := s.transactions.WithTx(tx)

		user, err := users.GetUserByIDForUpdate(ctx, req.UserID)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				return errors.New(errors.ErrCodeNotFound, "User not found")
			}
			return err
		}

		raffle, err = raffles.GetRaffleByIDForUpdate(ctx, req.RaffleID)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				return errors.New(errors.ErrCodeNotFound, "Raffle not found")
			}
			return err
		}

		if raffle.IsFull() {
			result = rejected(OutcomeRaffleFull, msgRaffleFull, user.Balance)
			return nil
		}

		cost := raffle.TicketPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		if user.Balance.LessThan(cost) {
			result = rejected(OutcomeInsufficientBalance, msgInsufficientBalance, user.Balance)
			return nil
		}

		ticket, err := tickets.FindUserTicket(ctx, user.ID, raffle.ID)
		if err != nil {
			return err
		}

		if exceedsTicketCap(ticket, req.Quantity) {
			result = rejected(OutcomeMaxTickets, msgMaxTickets, user.Balance)
			return nil
		}

		if raffle.IsUniqueNumberSelection {
			picked := make(map[int]bool, len(req.SelectedNumbers))
			for _, n := range req.SelectedNumbers {
				if picked[n] || raffle.HasSelectedNumber(n) {
					result = rejected(OutcomeNumberTaken, msgNumberTaken, user.Balance)
					return nil
				}
				picked[n] = true
			}
		}

		outcome, message := OutcomeUpdated, msgTicketUpdated
		if ticket != nil {
			ticket.Quantity += req.Quantity
			ticket.SelectedNumbers = append(ticket.SelectedNumbers, req.SelectedNumbers...)
			if err := tickets.UpdateTicket(ctx, ticket); err != nil {
				return err
			}
			// A repeat purchase counts as a single entrant.
			raffle.Entrants++
		} else {
			outcome, message = OutcomeCreated, msgTicketCreated
			ticket = &models.Ticket{
				UserID:          user.ID,
				RaffleID:        raffle.ID,
				SelectedNumbers: append([]int{}, req.SelectedNumbers...),
				Quantity:        req.Quantity,
				Price:           raffle.TicketPrice,
			}
			if err := tickets.CreateTicket(ctx, ticket); err != nil {
				return err
			}
			raffle.Entrants += req.Quantity
		}

		raffle.UserSelectedNumbers = append(raffle.UserSelectedNumbers, req.SelectedNumbers...)
		if err := raffles.UpdateRaffle(ctx, raffle); err != nil {
			return err
		}

		user.Balance = user.Balance.Sub(cost)
		if err := users.UpdateUser(ctx, user); err != nil {
			return err
		}

		if err := ledger.CreateTransaction(ctx, &models.Transaction{
			UserID:      user.ID,
			Amount:      cost,
			Type:        models.TxTypeDebit,
			Description: fmt.Sprintf("Ticket purchase for raffle: %s", raffle.Name),
		}); err != nil {
			return err
		}

		result = &PurchaseResult{
			Outcome: outcome,
			Message: message,
			Ticket:  ticket,
			Balance: user.Balance,
		}
		event = notify.PurchaseEvent{
			Username:   user.Username,
			RaffleName: raffle.Name,
			Quantity:   req.Quantity,
			Amount:     cost,
			Entrants:   raffle.Entrants,
			Capacity:   raffle.TotalEntriesAllowed,
		}
		return nil
	})
	if err != nil {
		logger.Warn("Ticket purchase failed", "user_id", req.UserID, "raffle_id", req.RaffleID, "error", err)
		return nil, err
	}

	if result.Completed() {
		logger.Info("Ticket purchased",
			"user_id", req.UserID,
			"raffle_id", req.RaffleID,
			"quantity", req.Quantity,
			"outcome", result.Outcome,
		)
		s.notifier.NotifyPurchase(event)
		if raffle.IsFull() {
			s.notifier.NotifyRaffleFull(raffle.Name, raffle.TotalEntriesAllowed)
		}
	}

	return result, nil
}

func rejected(outcome, message string, balance decimal.Decimal) *PurchaseResult {
	return &PurchaseResult{Outcome: outcome, Message: message, Balance: balance}
}

// exceedsTicketCap applies the per-raffle limit to the user's existing ticket.
func exceedsTicketCap(existing *models.Ticket, quantity int) bool {
	if existing == nil {
		return quantity > models.MaxTicketsPerRaffle
	}
	if existing.Quantity >= models.MaxTicketsPerRaffle {
		return true
	}
	return existing.Quantity+quantity > models.MaxTicketsPerRaffle
}
