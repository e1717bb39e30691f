package services

import (
	"testing"
	"time"

	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/repositories"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

type testEnv struct {
	db           *gorm.DB
	store        *testutil.FakeStorage
	notifier     *testutil.RecordingNotifier
	purchases    *PurchaseService
	tickets      *TicketService
	raffles      *RaffleService
	users        *UserService
	transactions *TransactionService
	clients      *ClientService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	transactor := repositories.NewTransactor(db)
	userRepo := repositories.NewUserRepository(db)
	raffleRepo := repositories.NewRaffleRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	clientRepo := repositories.NewClientRepository(db)

	store := testutil.NewFakeStorage()
	notifier := &testutil.RecordingNotifier{}

	return &testEnv{
		db:           db,
		store:        store,
		notifier:     notifier,
		purchases:    NewPurchaseService(transactor, userRepo, raffleRepo, ticketRepo, txRepo, notifier),
		tickets:      NewTicketService(ticketRepo),
		raffles:      NewRaffleService(raffleRepo, store, 1<<20),
		users:        NewUserService(transactor, userRepo, txRepo, testSecret, time.Hour),
		transactions: NewTransactionService(txRepo, userRepo),
		clients:      NewClientService(clientRepo),
	}
}

func (e *testEnv) seedUser(t *testing.T, username, role string, balance int64) *models.User {
	t.Helper()
	hash, err := security.HashPassword("secret")
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Password: hash,
		Role:     role,
		Balance:  decimal.NewFromInt(balance),
		IsActive: true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedRaffle(t *testing.T, price int64, entrants, total int) *models.Raffle {
	t.Helper()
	launch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	raffle := &models.Raffle{
		Name:                "Weekly",
		Type:                "standard",
		Photo:               "https://img.test/lottery-photos/1-weekly.png",
		Numbers:             []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		LaunchDate:          launch,
		DrawDate:            launch.Add(7 * 24 * time.Hour),
		Entrants:            entrants,
		TotalEntriesAllowed: total,
		TicketPrice:         decimal.NewFromInt(price),
	}
	require.NoError(t, e.db.Create(raffle).Error)
	return raffle
}

func (e *testEnv) reloadUser(t *testing.T, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, id).Error)
	return user
}

func (e *testEnv) reloadRaffle(t *testing.T, id uint) models.Raffle {
	t.Helper()
	var raffle models.Raffle
	require.NoError(t, e.db.First(&raffle, id).Error)
	return raffle
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func strPtr(s string) *string { return &s }
