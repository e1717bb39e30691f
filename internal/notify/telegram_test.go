package notify

import (
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func TestTelegram_DeliversQueuedMessages(t *testing.T) {
	rec := &recordingSender{}
	n := newTelegram(rec, 555, 10)

	n.NotifyPurchase(PurchaseEvent{
		Username:   "alice",
		RaffleName: "Weekly",
		Quantity:   2,
		Amount:     decimal.NewFromInt(10),
		Entrants:   3,
		Capacity:   50,
	})
	n.NotifyRaffleFull("Weekly", 50)
	n.Close()

	if len(rec.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(rec.sent))
	}
	if rec.sent[0].ChatID != 555 {
		t.Errorf("ChatID = %d, want 555", rec.sent[0].ChatID)
	}
	if !strings.Contains(rec.sent[0].Text, "alice bought 2 ticket(s)") || !strings.Contains(rec.sent[0].Text, "10.00") {
		t.Errorf("purchase text = %q", rec.sent[0].Text)
	}
	if !strings.Contains(rec.sent[1].Text, "is full") {
		t.Errorf("raffle full text = %q", rec.sent[1].Text)
	}
}

func TestTelegram_CloseIsIdempotent(t *testing.T) {
	n := newTelegram(&recordingSender{}, 1, 1)
	n.Close()
	n.Close()
}

func TestTelegram_DropsAfterClose(t *testing.T) {
	rec := &recordingSender{}
	n := newTelegram(rec, 1, 4)
	n.Close()

	n.NotifyPurchase(PurchaseEvent{Username: "alice", RaffleName: "Weekly", Quantity: 1, Amount: decimal.NewFromInt(5)})
	n.NotifyRaffleFull("Weekly", 50)

	if len(rec.sent) != 0 {
		t.Errorf("sent %d messages after Close, want 0", len(rec.sent))
	}
}
