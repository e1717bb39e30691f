package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PurchaseEvent describes a committed ticket purchase.
type PurchaseEvent struct {
	Username   string
	RaffleName string
	Quantity   int
	Amount     decimal.Decimal
	Entrants   int
	Capacity   int
}

// Notifier tells staff about activity worth a glance.
type Notifier interface {
	NotifyPurchase(event PurchaseEvent)
	NotifyRaffleFull(raffleName string, capacity int)
	Close()
}

type Noop struct{}

func (Noop) NotifyPurchase(PurchaseEvent)   {}
func (Noop) NotifyRaffleFull(string, int)   {}
func (Noop) Close()                         {}

func purchaseText(e PurchaseEvent) string {
	return fmt.Sprintf("🎟 %s bought %d ticket(s) in %q for %s (%d/%d entrants)",
		e.Username, e.Quantity, e.RaffleName, e.Amount.StringFixed(2), e.Entrants, e.Capacity)
}

func raffleFullText(raffleName string, capacity int) string {
	return fmt.Sprintf("✅ Raffle %q is full (%d entrants)", raffleName, capacity)
}
