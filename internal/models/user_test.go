package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func TestUser_BeforeSave_ValidRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{name: "Player role", role: RolePlayer, wantErr: false},
		{name: "Agent role", role: RoleAgent, wantErr: false},
		{name: "Admin role", role: RoleAdmin, wantErr: false},
		{name: "Invalid role", role: "owner", wantErr: true},
		{name: "Empty role", role: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{
				Username: "alice",
				Password: "hash",
				Role:     tt.role,
			}

			err := user.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUser_BeforeSave_DropsCommissionForNonAgents(t *testing.T) {
	commission := decimal.NewFromInt(15)
	user := &User{Username: "bob", Password: "hash", Role: RolePlayer, CommissionPercentage: &commission}

	if err := user.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave() error = %v", err)
	}
	if user.CommissionPercentage != nil {
		t.Errorf("CommissionPercentage = %v, want nil for players", user.CommissionPercentage)
	}
}

func TestUser_JSONHidesPassword(t *testing.T) {
	user := User{ID: 1, Username: "alice", Password: "secret-hash", Role: RolePlayer, Balance: decimal.NewFromInt(10)}
	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if _, ok := decoded["password"]; ok {
		t.Error("serialised user contains password")
	}
	if decoded["balance"] != float64(10) {
		t.Errorf("balance = %v, want numeric 10", decoded["balance"])
	}
}

func TestRaffle_BeforeSave(t *testing.T) {
	launch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := func() *Raffle {
		return &Raffle{
			Name:                "Weekly",
			Type:                "pick3",
			Numbers:             datatypes.JSONSlice[int]{1, 2, 3},
			LaunchDate:          launch,
			DrawDate:            launch.Add(24 * time.Hour),
			TotalEntriesAllowed: 50,
			TicketPrice:         decimal.NewFromInt(5),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *Raffle)
		wantErr bool
	}{
		{name: "Valid raffle", mutate: func(r *Raffle) {}, wantErr: false},
		{name: "Draw before launch", mutate: func(r *Raffle) { r.DrawDate = launch.Add(-time.Hour) }, wantErr: true},
		{name: "Draw equals launch", mutate: func(r *Raffle) { r.DrawDate = launch }, wantErr: true},
		{name: "Empty numbers", mutate: func(r *Raffle) { r.Numbers = nil }, wantErr: true},
		{name: "Zero capacity", mutate: func(r *Raffle) { r.TotalEntriesAllowed = 0 }, wantErr: true},
		{name: "Zero price", mutate: func(r *Raffle) { r.TicketPrice = decimal.Zero }, wantErr: true},
		{name: "Missing name", mutate: func(r *Raffle) { r.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raffle := valid()
			tt.mutate(raffle)

			err := raffle.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRaffle_IsFull(t *testing.T) {
	tests := []struct {
		name     string
		entrants int
		total    int
		want     bool
	}{
		{name: "Empty", entrants: 0, total: 50, want: false},
		{name: "One left", entrants: 49, total: 50, want: false},
		{name: "Exactly full", entrants: 50, total: 50, want: true},
		{name: "Over capacity", entrants: 52, total: 50, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Raffle{Entrants: tt.entrants, TotalEntriesAllowed: tt.total}
			if got := r.IsFull(); got != tt.want {
				t.Errorf("IsFull() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRaffle_HasSelectedNumber(t *testing.T) {
	r := &Raffle{UserSelectedNumbers: datatypes.JSONSlice[int]{4, 8, 15}}
	if !r.HasSelectedNumber(8) {
		t.Error("HasSelectedNumber(8) = false, want true")
	}
	if r.HasSelectedNumber(16) {
		t.Error("HasSelectedNumber(16) = true, want false")
	}
}

func TestTicket_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		ticket  Ticket
		wantErr bool
	}{
		{name: "Valid", ticket: Ticket{UserID: 1, RaffleID: 2, Quantity: 1, Price: decimal.NewFromInt(5)}, wantErr: false},
		{name: "Zero quantity", ticket: Ticket{UserID: 1, RaffleID: 2, Quantity: 0, Price: decimal.NewFromInt(5)}, wantErr: true},
		{name: "Missing user", ticket: Ticket{RaffleID: 2, Quantity: 1, Price: decimal.NewFromInt(5)}, wantErr: true},
		{name: "Negative price", ticket: Ticket{UserID: 1, RaffleID: 2, Quantity: 1, Price: decimal.NewFromInt(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := tt.ticket
			err := ticket.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{name: "Debit", tx: Transaction{UserID: 1, Type: TxTypeDebit, Amount: decimal.NewFromInt(5)}, wantErr: false},
		{name: "Credit", tx: Transaction{UserID: 1, Type: TxTypeCredit, Amount: decimal.NewFromInt(5)}, wantErr: false},
		{name: "Unknown type", tx: Transaction{UserID: 1, Type: "refund", Amount: decimal.NewFromInt(5)}, wantErr: true},
		{name: "Zero amount", tx: Transaction{UserID: 1, Type: TxTypeDebit, Amount: decimal.Zero}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.tx
			err := tx.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{User{}.TableName(), "users"},
		{Raffle{}.TableName(), "raffles"},
		{Ticket{}.TableName(), "tickets"},
		{Transaction{}.TableName(), "transactions"},
		{Client{}.TableName(), "clients"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("TableName() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRoleConstants(t *testing.T) {
	if RolePlayer != "player" || RoleAgent != "agent" || RoleAdmin != "admin" {
		t.Errorf("unexpected role constants: %q %q %q", RolePlayer, RoleAgent, RoleAdmin)
	}
	if !IsValidRole(RoleAgent) || IsValidRole("root") {
		t.Error("IsValidRole() returned unexpected result")
	}
}
