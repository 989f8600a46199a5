// Package bot – admin commands: /stats and /check. Authorization against
// the static allow-list happens in the command dispatcher.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-fileshare-bot/internal/link"
	"github.com/tbourn/go-fileshare-bot/internal/repo"
)

// handleStats reports the total user count.
func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	count, err := b.store.CountUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("user count failed")
		b.reply(msg, "❌ Error fetching user count")
		return
	}
	b.reply(msg, fmt.Sprintf("📊 Total users: %d", count))
}

// handleCheck reports a file's stored metadata and access count.
func (b *Bot) handleCheck(ctx context.Context, msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		b.reply(msg, "Usage: /check <file_id>")
		return
	}
	fileID, err := strconv.Atoi(arg)
	if err != nil {
		b.reply(msg, "Invalid file ID. Must be a number.")
		return
	}

	f, err := b.store.GetFile(ctx, fileID)
	if errors.Is(err, repo.ErrNotFound) {
		b.reply(msg, "File not found in database.")
		return
	}
	if err != nil {
		log.Error().Err(err).Int("file_id", fileID).Msg("file stats lookup failed")
		b.reply(msg, "❌ Database error")
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(
		"📊 File Stats\n\n"+
			"🆔 ID: %d\n👤 Uploader: %s\n📅 Uploaded: %s\n🔢 Accesses: %d\n\n"+
			"🔗 [View File](%s)",
		fileID, orUnknown(f.UploaderName), f.UploadDate.Format("2006-01-02 15:04"),
		f.AccessCount, link.ArchiveLink(b.cfg.ArchiveChannelID, fileID)))
	out.ParseMode = tgbotapi.ModeMarkdown
	out.DisableWebPagePreview = true
	b.send(out)
}
