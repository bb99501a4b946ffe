// Package notify sends operational alerts to Telegram.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between messages to the same chat to avoid 429 Too Many
// Requests (~30/min limit).
const sendInterval = 2 * time.Second

// TelegramNotifier sends collection alerts to one chat. A nil notifier is
// valid and drops everything, so callers never gate on configuration.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier builds a notifier. Returns nil (not an error) when the
// token is empty or the bot cannot authenticate; alerting is best effort.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	if token == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false
	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get bot info", "error", err)
		return nil
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyBookFailure reports one book's failed collection attempt.
func (n *TelegramNotifier) NotifyBookFailure(book, sport string, err error) {
	if n == nil {
		return
	}
	n.send(fmt.Sprintf("⚠️ %s collection failed for %s:\n%v", book, sport, err))
}

// NotifyCycle reports a completed collection cycle.
func (n *TelegramNotifier) NotifyCycle(sport string, events, failures int) {
	if n == nil {
		return
	}
	n.send(fmt.Sprintf("📊 %s: %d events collected, %d book failures", sport, events, failures))
}

func (n *TelegramNotifier) send(text string) {
	n.mu.Lock()
	if wait := sendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram message", "error", err)
	}
}
