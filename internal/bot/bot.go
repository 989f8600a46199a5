// Package bot wires the Telegram transport to the gate, link codec,
// persistence store, and notifier. It owns update dispatch and every
// command/media/callback handler: the gated start flow, deep-link file
// retrieval, uploads into the archive channel, the admin commands, and the
// broadcast loop.
//
// Design goals:
//   - All dependencies injected; no package-level client or database state
//   - One goroutine per incoming update; handlers share nothing mutable
//   - Platform errors handled at call sites (fail-closed gate, generic
//     upload failure, RetryAfter waits); nothing after startup is fatal
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-fileshare-bot/internal/config"
	"github.com/tbourn/go-fileshare-bot/internal/domain"
	"github.com/tbourn/go-fileshare-bot/internal/notify"
)

// API is the slice of the Bot API client the handlers use.
// *tgbotapi.BotAPI satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error)
}

// Store is the persistence capability the handlers depend on.
// *repo.Store satisfies it.
type Store interface {
	SaveUser(ctx context.Context, userID int64, username, firstName string) bool
	SaveFile(ctx context.Context, fileID int, uploaderID int64, uploaderName, fileType string) bool
	RecordAccess(ctx context.Context, fileID int, userID int64, username, firstName string) bool
	GetFile(ctx context.Context, fileID int) (*domain.File, error)
	CountUsers(ctx context.Context) (int64, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// Gate answers membership questions. *gate.Checker satisfies it.
type Gate interface {
	IsFullyVerified(userID int64) bool
	Channels() []string
}

// Bot holds the injected dependencies of all update handlers.
type Bot struct {
	api      API
	self     tgbotapi.User
	store    Store
	gate     Gate
	notifier notify.Notifier
	cfg      config.TelegramConfig

	// limiter paces broadcast sends; sleep is a seam for RetryAfter waits.
	limiter *rate.Limiter
	sleep   func(time.Duration)
}

// New builds a Bot. self must be the identity returned by the platform for
// the bot's own account (its username is embedded in share links).
func New(api API, self tgbotapi.User, store Store, g Gate, n notify.Notifier, cfg config.Config) *Bot {
	return &Bot{
		api:      api,
		self:     self,
		store:    store,
		gate:     g,
		notifier: n,
		cfg:      cfg.Telegram,
		limiter:  rate.NewLimiter(rate.Limit(cfg.BroadcastRPS), cfg.BroadcastBurst),
		sleep:    time.Sleep,
	}
}

// Run consumes updates until the channel closes or ctx is canceled. Each
// update is dispatched on its own goroutine so a slow handler (e.g. a long
// broadcast) never blocks the others.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate routes one update to exactly one matching handler.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		updatesTotal.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		switch {
		case msg.IsCommand():
			updatesTotal.WithLabelValues("command").Inc()
			b.handleCommand(ctx, msg)
		case hasMedia(msg):
			updatesTotal.WithLabelValues("media").Inc()
			b.handleMedia(ctx, msg)
		}
	}
}

// handleCommand dispatches the recognized text commands. Admin commands are
// authorized against the static allow-list before their handler body runs.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.handleHelp(msg)
	case "feedback":
		b.handleFeedback(msg)
	case "stats":
		if b.isAdmin(msg.From.ID) {
			b.handleStats(ctx, msg)
		}
	case "check":
		if b.isAdmin(msg.From.ID) {
			b.handleCheck(ctx, msg)
		}
	case "broadcast":
		if b.isAdmin(msg.From.ID) {
			b.handleBroadcast(ctx, msg)
		}
	}
}

// hasMedia reports whether the message carries one of the shareable media
// kinds (document, photo, video, audio).
func hasMedia(msg *tgbotapi.Message) bool {
	return msg.Document != nil || len(msg.Photo) > 0 || msg.Video != nil || msg.Audio != nil
}

func (b *Bot) isAdmin(id int64) bool {
	for _, a := range b.cfg.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}

// reply sends a plain text reply into the message's chat; failures are
// logged only.
func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	b.send(tgbotapi.NewMessage(msg.Chat.ID, text))
}

// replyMarkdown is reply with Markdown parsing enabled.
func (b *Bot) replyMarkdown(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	b.send(out)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error().Err(err).Msg("send failed")
	}
}
