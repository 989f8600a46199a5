// Package bot – inline-keyboard callback handlers: the "I've Joined"
// re-check and the upload prompt.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Callback data values wired into the inline keyboards.
const (
	callbackCheckJoined = "check_joined"
	callbackUploadFile  = "upload_file"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	switch cq.Data {
	case callbackCheckJoined:
		b.handleCheckJoined(ctx, cq)
	case callbackUploadFile:
		b.handleUploadPrompt(cq)
	}
}

// handleCheckJoined re-evaluates the gate when a user taps "I've Joined".
// On success the prompt is edited into a success notice and the generic
// start flow is replayed; a deep-link payload the user was originally
// chasing is not resumed. The notice tells them to open their link again.
func (b *Bot) handleCheckJoined(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	user := cq.From
	if cq.Message == nil {
		return
	}

	if !b.gate.IsFullyVerified(user.ID) {
		b.answerCallback(tgbotapi.NewCallbackWithAlert(cq.ID, "You haven't joined all channels yet!"))
		return
	}

	b.send(tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID,
		"✅ Thanks for joining! Now you can use the bot.\n-- Please start with your link again"))
	b.answerCallback(tgbotapi.NewCallback(cq.ID, ""))

	b.store.SaveUser(ctx, user.ID, user.UserName, user.FirstName)
	b.sendMainMenu(cq.Message.Chat.ID, user)
}

// handleUploadPrompt edits the menu message into an upload prompt.
func (b *Bot) handleUploadPrompt(cq *tgbotapi.CallbackQuery) {
	if cq.Message != nil {
		b.send(tgbotapi.NewEditMessageText(cq.Message.Chat.ID, cq.Message.MessageID,
			"⬆️ Please send me the file you want to upload"))
	}
	b.answerCallback(tgbotapi.NewCallback(cq.ID, ""))
}

func (b *Bot) answerCallback(c tgbotapi.CallbackConfig) {
	if _, err := b.api.Request(c); err != nil {
		log.Error().Err(err).Msg("callback answer failed")
	}
}
