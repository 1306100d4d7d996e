package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fittrack/internal/ledger"
	"fittrack/internal/session"
)

// Bot routes inbound Telegram events to the dialog engine or the
// quick-entry resolver and reports summaries back to the user.
type Bot struct {
	s           sender
	api         *tgbotapi.BotAPI
	store       ledger.Store
	sessions    *session.Manager
	parseMode   string
	loc         *time.Location
	idleTimeout time.Duration
	now         func() time.Time
}

func New(botToken string, store ledger.Store, sessions *session.Manager, parseMode string, loc *time.Location, idleTimeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		s:           botAPISender{api: api},
		api:         api,
		store:       store,
		sessions:    sessions,
		parseMode:   parseMode,
		loc:         loc,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
		}
	}
}

// SweepIdleSessions cancels dialogs idle longer than the configured timeout
// and tells the affected users. Wired to the scheduler tick.
func (b *Bot) SweepIdleSessions(ctx context.Context) {
	for _, e := range b.sessions.SweepIdle(b.idleTimeout) {
		log.Printf("session for user %d expired after %v idle", e.UserID, b.idleTimeout)
		b.sendMessage(e.ChatID, "⌛ Dialog timed out and was cancelled")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	msg.ReplyMarkup = markup
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = b.parseMode
	if _, err := b.s.Send(edit); err != nil {
		log.Printf("failed to edit message: %v", err)
	}
}
