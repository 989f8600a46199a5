package notify

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestNotify_SendsToChannel(t *testing.T) {
	f := &fakeSender{}
	n := NewChannelNotifier(f, -100123)

	n.Notify("hello admins")

	if len(f.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(f.sent))
	}
	msg := f.sent[0]
	if msg.ChatID != -100123 || msg.Text != "hello admins" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.ParseMode != tgbotapi.ModeMarkdown || !msg.DisableWebPagePreview {
		t.Fatalf("expected markdown without preview: %+v", msg)
	}
}

func TestNotify_SwallowsErrors(t *testing.T) {
	f := &fakeSender{err: errors.New("network down")}
	n := NewChannelNotifier(f, -100123)

	// Must not panic or surface anything.
	n.Notify("best effort")
}
