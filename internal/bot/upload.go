// Package bot – upload workflow: archive a media message and hand back a
// shareable deep link.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-fileshare-bot/internal/link"
)

// handleMedia archives an uploaded file. Unverified users are dropped
// silently (they see the join prompt through the /start flow instead). The
// original message is forwarded (not copied) into the archive channel, and
// the forwarded message's id becomes the file id embedded in the share link.
func (b *Bot) handleMedia(ctx context.Context, msg *tgbotapi.Message) {
	user := msg.From
	if !b.gate.IsFullyVerified(user.ID) {
		uploadsTotal.WithLabelValues("gated").Inc()
		return
	}

	fileType := classifyMedia(msg)

	fwd := tgbotapi.NewForward(b.cfg.ArchiveChannelID, msg.Chat.ID, msg.MessageID)
	archived, err := b.api.Send(fwd)
	if err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Int64("user_id", user.ID).Msg("archive forward failed")
		b.reply(msg, "❌ Failed to upload file. Please try again.")
		return
	}
	fileID := archived.MessageID

	b.store.SaveFile(ctx, fileID, user.ID, orUnknown(user.FirstName), fileType)

	shareLink := link.DeepLink(b.self.UserName, fileID)
	b.replyMarkdown(msg, fmt.Sprintf(
		"✅ File uploaded successfully!\n\n"+
			"🔗 Share this link:\n`%s`\n\n"+
			"📊 Use /check %d to view stats (admin only)", shareLink, fileID))
	uploadsTotal.WithLabelValues("ok").Inc()

	b.notifier.Notify(fmt.Sprintf(
		"📤 New File Uploaded!\n\n"+
			"📄 File ID: `%d`\n📂 Type: %s\n👤 Uploaded by: %s\n🆔 User ID: %d\n\n"+
			"🔗 [View File](%s)",
		fileID, fileType, user.FirstName, user.ID,
		link.ArchiveLink(b.cfg.ArchiveChannelID, fileID)))
}

// classifyMedia derives the stored content-type tag: the declared MIME type
// for documents, videos, and audio, the literal "photo" for photos, and
// "unknown" otherwise.
func classifyMedia(msg *tgbotapi.Message) string {
	switch {
	case msg.Document != nil:
		return orUnknownType(msg.Document.MimeType)
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Video != nil:
		return orUnknownType(msg.Video.MimeType)
	case msg.Audio != nil:
		return orUnknownType(msg.Audio.MimeType)
	default:
		return "unknown"
	}
}

func orUnknownType(mime string) string {
	if mime == "" {
		return "unknown"
	}
	return mime
}
