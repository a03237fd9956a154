package bot

import (
	"context"
	"errors"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

// ErrNotifierUnbound is returned when a notification is requested before the
// bot instance has been attached.
var ErrNotifierUnbound = errors.New("notifier: bot not bound")

// TelegramNotifier delivers order notifications through the running bot.
// The bot instance only exists once the runtime has started, so it is bound
// from the OnStart hook.
type TelegramNotifier struct {
	bot atomic.Pointer[tele.Bot]
}

// Bind attaches the live bot instance.
func (n *TelegramNotifier) Bind(bot *tele.Bot) {
	n.bot.Store(bot)
}

// Notify sends an HTML message to the given chat.
func (n *TelegramNotifier) Notify(ctx context.Context, chatID int64, text string) error {
	bot := n.bot.Load()
	if bot == nil {
		return ErrNotifierUnbound
	}
	_, err := bot.Send(&tele.Chat{ID: chatID}, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
	return err
}
