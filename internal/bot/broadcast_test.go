package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestBroadcast_ReportsOutcomes(t *testing.T) {
	d := newTestBot(t)
	d.store.userIDs = []int64{11, 22, 33}
	// The second recipient blocked the bot.
	d.api.sendErrs = []error{
		nil,
		&tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"},
		nil,
	}

	d.bot.handleBroadcast(context.Background(), command(adminUser(), 500, "/broadcast hello there"))

	msgs := d.api.messages()
	// Three recipient sends plus the report.
	if len(msgs) != 4 {
		t.Fatalf("expected 4 sends, got %d", len(msgs))
	}
	if msgs[0].Text != "📢 Announcement:\n\nhello there" {
		t.Fatalf("unexpected broadcast text: %q", msgs[0].Text)
	}
	report := msgs[3].Text
	for _, want := range []string{"Success: 2", "Failed: 1", "Blocked: 1", "Blocked users: 22"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report lacks %q: %q", want, report)
		}
	}
}

func TestBroadcast_RetriesSameRecipientAfterRateLimit(t *testing.T) {
	d := newTestBot(t)
	d.store.userIDs = []int64{11}
	d.api.sendErrs = []error{
		&tgbotapi.Error{
			Code:               429,
			Message:            "Too Many Requests: retry after 3",
			ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 3},
		},
		nil,
	}
	var slept []time.Duration
	d.bot.sleep = func(dur time.Duration) { slept = append(slept, dur) }

	d.bot.handleBroadcast(context.Background(), command(adminUser(), 500, "/broadcast ping"))

	if len(slept) != 1 || slept[0] != 3*time.Second {
		t.Fatalf("expected one 3s wait, got %v", slept)
	}
	msgs := d.api.messages()
	// Failed attempt, retry, report.
	if len(msgs) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(msgs))
	}
	if !strings.Contains(msgs[2].Text, "Success: 1") {
		t.Fatalf("retried send must count as success: %q", msgs[2].Text)
	}
}

func TestBroadcast_EmptyMessageShowsUsage(t *testing.T) {
	d := newTestBot(t)

	d.bot.handleBroadcast(context.Background(), command(adminUser(), 500, "/broadcast"))

	msgs := d.api.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "Usage: /broadcast") {
		t.Fatalf("expected usage reply, got %+v", msgs)
	}
}

func TestBroadcast_UserListingError(t *testing.T) {
	d := newTestBot(t)
	d.store.listErr = errors.New("boom")

	d.bot.handleBroadcast(context.Background(), command(adminUser(), 500, "/broadcast hi"))

	msgs := d.api.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "Error fetching users") {
		t.Fatalf("expected error reply, got %+v", msgs)
	}
}

func TestBroadcast_StopsOnCancel(t *testing.T) {
	d := newTestBot(t)
	d.store.userIDs = []int64{11, 22, 33}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.bot.handleBroadcast(ctx, command(adminUser(), 500, "/broadcast hi"))

	msgs := d.api.messages()
	// Only the report goes out; the limiter refuses on a canceled context.
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "Success: 0") {
		t.Fatalf("canceled broadcast must send nothing but the report, got %+v", msgs)
	}
}

func TestRetryAfter(t *testing.T) {
	if got := retryAfter(errors.New("plain")); got != 0 {
		t.Fatalf("plain error: got %v", got)
	}
	err := &tgbotapi.Error{ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 5}}
	if got := retryAfter(err); got != 5*time.Second {
		t.Fatalf("rate limit: got %v", got)
	}
}
