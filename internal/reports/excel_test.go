package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTicketsWorkbook(t *testing.T) {
	tickets := []models.Ticket{
		{
			ID:              1,
			User:            &models.User{Username: "alice"},
			Raffle:          &models.Raffle{Name: "Weekly"},
			SelectedNumbers: []int{3, 7},
			Quantity:        2,
			Price:           decimal.NewFromInt(5),
			CreatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	data, err := TicketsWorkbook(tickets)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Tickets")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "User", rows[0][1])
	require.Equal(t, []string{"1", "alice", "Weekly", "3, 7", "2", "5", "10", "2026-03-01 10:00:00"}, rows[1])
}

func TestTransactionsWorkbook_Empty(t *testing.T) {
	data, err := TransactionsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Description", rows[0][4])
}
