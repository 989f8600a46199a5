// Package bot – /start flow: user registration, deep-link retrieval,
// the membership join prompt, and the main menu.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-fileshare-bot/internal/link"
)

// handleStart registers the user, then either serves a deep-link payload,
// prompts the user to join the required channels, or shows the main menu.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	user := msg.From
	b.store.SaveUser(ctx, user.ID, user.UserName, user.FirstName)

	if arg := msg.CommandArguments(); arg != "" && link.IsPayload(arg) {
		b.handleRetrieve(ctx, msg, arg)
		return
	}

	if !b.gate.IsFullyVerified(user.ID) {
		b.sendJoinPrompt(msg.Chat.ID, user.FirstName)
		return
	}

	b.sendMainMenu(msg.Chat.ID, user)
}

// sendMainMenu shows the verified-user welcome with the channel, developer,
// and upload buttons, and notifies the admin channel.
func (b *Bot) sendMainMenu(chatID int64, user *tgbotapi.User) {
	menu := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📢 Channel", "https://t.me/"+b.cfg.MainChannel),
			tgbotapi.NewInlineKeyboardButtonURL("👤 Developer", "https://t.me/"+b.cfg.DeveloperHandle),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Upload File", callbackUploadFile),
		),
	)

	out := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"👋 Welcome %s!\n\n"+
			"This bot helps you share files easily.\n\n"+
			"• Just send me any file\n"+
			"• I'll generate a shareable link\n"+
			"• Share the link with anyone\n\n"+
			"Click 'Upload File' to get started!", user.FirstName))
	out.ReplyMarkup = menu
	b.send(out)

	b.notifier.Notify(fmt.Sprintf(
		"📢 New user started the bot!\n\n"+
			"Name: %s\nID: %d\nUsername: %s",
		user.FirstName, user.ID, handleOrNA(user.UserName)))
}

// handleRetrieve serves a `/start file_<id>` deep link: decode, re-check the
// gate, record the access, then copy the archived message to the requester.
// An invalid payload aborts silently; so does a failed copy (the access is
// already counted at that point).
func (b *Bot) handleRetrieve(ctx context.Context, msg *tgbotapi.Message, payload string) {
	fileID, err := link.Decode(payload)
	if err != nil {
		retrievalsTotal.WithLabelValues("invalid").Inc()
		log.Debug().Str("payload", payload).Msg("invalid deep-link payload dropped")
		return
	}

	user := msg.From
	if !b.gate.IsFullyVerified(user.ID) {
		retrievalsTotal.WithLabelValues("gated").Inc()
		b.sendJoinPrompt(msg.Chat.ID, user.FirstName)
		return
	}

	// The access is counted before delivery is attempted.
	b.store.RecordAccess(ctx, fileID, user.ID, user.UserName, user.FirstName)

	cp := tgbotapi.NewCopyMessage(msg.Chat.ID, b.cfg.ArchiveChannelID, fileID)
	if _, err := b.api.CopyMessage(cp); err != nil {
		retrievalsTotal.WithLabelValues("copy_failed").Inc()
		log.Error().Err(err).Int("file_id", fileID).Int64("user_id", user.ID).Msg("file delivery failed")
		return
	}
	retrievalsTotal.WithLabelValues("ok").Inc()

	if f, err := b.store.GetFile(ctx, fileID); err == nil {
		b.notifier.Notify(fmt.Sprintf(
			"📥 File Accessed!\n\n"+
				"📄 File ID: `%d`\n📂 Type: %s\n⬆️ Uploaded by: %s\n\n"+
				"👤 Accessed by:\nName: %s\nID: %d\nUsername: %s\n\n"+
				"🔗 [View File](%s)",
			fileID, orUnknown(f.FileType), orUnknown(f.UploaderName),
			user.FirstName, user.ID, handleOrNA(user.UserName),
			link.ArchiveLink(b.cfg.ArchiveChannelID, fileID)))
	}
}

// sendJoinPrompt shows one join button per required channel plus the
// re-check button.
func (b *Bot) sendJoinPrompt(chatID int64, firstName string) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(b.gate.Channels())+1)
	for _, ch := range b.gate.Channels() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Join "+ch, "https://t.me/"+ch),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ I've Joined", callbackCheckJoined),
	))

	out := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"👋 Hello %s,\n\n"+
			"You need to join our channels to use this bot:\nPlease join first\n\n"+
			"After joining, click the button below.", firstName))
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(out)
}

// handleOrNA renders a Telegram username as "@name", or "N/A" for accounts
// without one.
func handleOrNA(username string) string {
	if username == "" {
		return "N/A"
	}
	return "@" + username
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
