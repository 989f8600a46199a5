// Package notify delivers best-effort notifications to the admin channel.
// Notifications are fire-and-forget side effects: the core workflows depend
// on them only loosely, so a Notifier never returns an error; delivery
// failures are logged and swallowed.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Sender is the single platform call the notifier depends on.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier is the capability handed to the workflows.
type Notifier interface {
	Notify(text string)
}

// ChannelNotifier posts Markdown messages to a fixed admin channel.
type ChannelNotifier struct {
	api    Sender
	chatID int64
}

// NewChannelNotifier builds a notifier for the given admin channel id.
func NewChannelNotifier(api Sender, chatID int64) *ChannelNotifier {
	return &ChannelNotifier{api: api, chatID: chatID}
}

// Notify sends text to the admin channel. Failures are logged only.
func (n *ChannelNotifier) Notify(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", n.chatID).Msg("admin notification failed")
	}
}
