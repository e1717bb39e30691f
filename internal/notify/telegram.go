package notify

import (
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mroshb/raffle_api/pkg/logger"
)

// sender is the slice of the bot API the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts notifications to an admin chat from a single worker so
// request handlers never wait on the Telegram API.
type Telegram struct {
	api    sender
	chatID int64
	queue  chan string
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewTelegram(token string, chatID int64, debug bool) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = debug

	logger.Info("Authorized on account", "username", api.Self.UserName)
	return newTelegram(api, chatID, 100), nil
}

func newTelegram(api sender, chatID int64, buffer int) *Telegram {
	t := &Telegram{
		api:    api,
		chatID: chatID,
		queue:  make(chan string, buffer),
	}
	t.wg.Add(1)
	go t.worker()
	return t
}

func (t *Telegram) worker() {
	defer t.wg.Done()
	for text := range t.queue {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.api.Send(msg); err != nil {
			logger.Warn("Failed to send telegram notification", "error", err)
		}
	}
}

func (t *Telegram) enqueue(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		logger.Warn("Notifier closed, dropping message")
		return
	}
	select {
	case t.queue <- text:
	default:
		logger.Warn("Notification queue full, dropping message")
	}
}

func (t *Telegram) NotifyPurchase(event PurchaseEvent) {
	t.enqueue(purchaseText(event))
}

func (t *Telegram) NotifyRaffleFull(raffleName string, capacity int) {
	t.enqueue(raffleFullText(raffleName, capacity))
}

// Close drains pending messages and stops the worker. Messages enqueued
// afterwards are dropped.
func (t *Telegram) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()

	t.wg.Wait()
}
