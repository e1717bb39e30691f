package services

import (
	"context"
	"testing"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestTicketQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "sam", models.RolePlayer, 50)
	raffle := env.seedRaffle(t, 5, 0, 50)

	_, err := env.tickets.ListTickets(ctx)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "No tickets found", appErr.Message)

	_, err = env.tickets.ListUserTickets(ctx, user.ID)
	appErr, ok = errors.As(err)
	require.True(t, ok)
	require.Equal(t, "No tickets found for this user", appErr.Message)

	result, err := env.purchases.Purchase(ctx, PurchaseRequest{UserID: user.ID, RaffleID: raffle.ID, Quantity: 2})
	require.NoError(t, err)

	tickets, err := env.tickets.ListUserTickets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.NotNil(t, tickets[0].Raffle)
	require.Equal(t, "Weekly", tickets[0].Raffle.Name)
	require.NotNil(t, tickets[0].User)

	ticket, err := env.tickets.GetTicket(ctx, result.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, 2, ticket.Quantity)

	data, err := env.tickets.ExportTickets(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	require.NoError(t, env.tickets.DeleteTicket(ctx, ticket.ID))
	_, err = env.tickets.GetTicket(ctx, ticket.ID)
	appErr, ok = errors.As(err)
	require.True(t, ok)
	require.Equal(t, "Ticket not found", appErr.Message)
}
