// Package bot – the /broadcast admin command: a paced sequential send to
// every known user with RetryAfter handling and blocked-recipient tracking.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// handleBroadcast sends text to every known user id, one at a time. Sends
// are paced by the token bucket; a rate-limit signal from the platform
// sleeps for the signaled duration and retries the same recipient. A
// recipient who blocked the bot is recorded and counted as failed; any
// other send error counts as failed. The aggregate report goes back to the
// invoking admin. The loop stops early only when ctx is canceled (process
// shutdown).
func (b *Bot) handleBroadcast(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.reply(msg, "Usage: /broadcast Your message here")
		return
	}
	formatted := "📢 Announcement:\n\n" + text

	ids, err := b.store.ListUserIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("broadcast user listing failed")
		b.reply(msg, "❌ Error fetching users")
		return
	}

	var success, failed int
	var blocked []int64

	for _, id := range ids {
		if err := b.limiter.Wait(ctx); err != nil {
			break
		}
		if b.sendBroadcast(id, formatted, &blocked) {
			success++
			broadcastSendsTotal.WithLabelValues("ok").Inc()
		} else {
			failed++
			broadcastSendsTotal.WithLabelValues("failed").Inc()
		}
	}

	b.reply(msg, fmt.Sprintf(
		"📢 Broadcast Results:\n\n"+
			"✅ Success: %d\n❌ Failed: %d\n⛔ Blocked: %d\n\n"+
			"Blocked users: %s",
		success, failed, len(blocked), formatIDs(blocked)))
}

// sendBroadcast delivers one message, retrying the same recipient after a
// rate-limit wait. It reports whether the send ultimately succeeded and
// appends the recipient to blocked when they blocked the bot.
func (b *Bot) sendBroadcast(id int64, text string, blocked *[]int64) bool {
	for {
		_, err := b.api.Send(tgbotapi.NewMessage(id, text))
		if err == nil {
			return true
		}
		if wait := retryAfter(err); wait > 0 {
			log.Warn().Int64("user_id", id).Dur("wait", wait).Msg("broadcast rate limited")
			b.sleep(wait)
			continue
		}
		if isBlocked(err) {
			*blocked = append(*blocked, id)
		} else {
			log.Error().Err(err).Int64("user_id", id).Msg("broadcast send failed")
		}
		return false
	}
}

// retryAfter extracts the platform's rate-limit wait, or 0 when err is not a
// rate-limit signal.
func retryAfter(err error) time.Duration {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return 0
}

// isBlocked reports whether err means the recipient blocked the bot.
func isBlocked(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "blocked")
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return "None"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
