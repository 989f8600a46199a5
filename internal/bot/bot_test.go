package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tbourn/go-fileshare-bot/internal/config"
	"github.com/tbourn/go-fileshare-bot/internal/domain"
	"github.com/tbourn/go-fileshare-bot/internal/repo"
)

// ---- fakes ----

// fakeAPI records outgoing traffic and scripts errors per call.
type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	copied   []tgbotapi.CopyMessageConfig

	// sendErrs is consumed one error per Send call; nil entries succeed.
	sendErrs []error
	copyErr  error

	nextMessageID int
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	if len(f.sendErrs) > 0 {
		err := f.sendErrs[0]
		f.sendErrs = f.sendErrs[1:]
		if err != nil {
			return tgbotapi.Message{}, err
		}
	}
	f.nextMessageID++
	return tgbotapi.Message{MessageID: f.nextMessageID + 100}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	f.copied = append(f.copied, config)
	if f.copyErr != nil {
		return tgbotapi.MessageID{}, f.copyErr
	}
	return tgbotapi.MessageID{MessageID: 1}, nil
}

// messages returns the MessageConfig sends, in order.
func (f *fakeAPI) messages() []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

// fakeStore is an in-memory Store that records calls.
type fakeStore struct {
	users       map[int64]bool
	files       map[int]*domain.File
	accesses    []int // file ids passed to RecordAccess
	userIDs     []int64
	listErr     error
	countErr    error
	countResult int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]bool{}, files: map[int]*domain.File{}}
}

func (s *fakeStore) SaveUser(_ context.Context, id int64, _, _ string) bool {
	if s.users[id] {
		return false
	}
	s.users[id] = true
	return true
}

func (s *fakeStore) SaveFile(_ context.Context, fileID int, uploaderID int64, uploaderName, fileType string) bool {
	if _, ok := s.files[fileID]; ok {
		return false
	}
	s.files[fileID] = &domain.File{
		FileID: fileID, UploaderID: uploaderID, UploaderName: uploaderName, FileType: fileType,
	}
	return true
}

func (s *fakeStore) RecordAccess(_ context.Context, fileID int, _ int64, _, _ string) bool {
	s.accesses = append(s.accesses, fileID)
	if f, ok := s.files[fileID]; ok {
		f.AccessCount++
	}
	return true
}

func (s *fakeStore) GetFile(_ context.Context, fileID int) (*domain.File, error) {
	if f, ok := s.files[fileID]; ok {
		return f, nil
	}
	return nil, repo.ErrNotFound
}

func (s *fakeStore) CountUsers(context.Context) (int64, error) {
	return s.countResult, s.countErr
}

func (s *fakeStore) ListUserIDs(context.Context) ([]int64, error) {
	return s.userIDs, s.listErr
}

// fakeGate verifies users from a fixed set.
type fakeGate struct {
	verified map[int64]bool
	channels []string
}

func (g *fakeGate) IsFullyVerified(id int64) bool { return g.verified[id] }
func (g *fakeGate) Channels() []string            { return g.channels }

// fakeNotifier collects notification texts.
type fakeNotifier struct{ notes []string }

func (n *fakeNotifier) Notify(text string) { n.notes = append(n.notes, text) }

// ---- helpers ----

const archiveID = int64(-1001234567890)

func testConfig() config.Config {
	return config.Config{
		Telegram: config.TelegramConfig{
			ArchiveChannelID: archiveID,
			NotifyChannelID:  -100999,
			MainChannel:      "mainchan",
			DeveloperHandle:  "dev",
			RequiredChannels: []string{"a", "b"},
			AdminIDs:         []int64{500},
			UpdateTimeout:    60,
		},
		BroadcastRPS:   1000,
		BroadcastBurst: 1000,
	}
}

type deps struct {
	api   *fakeAPI
	store *fakeStore
	gate  *fakeGate
	notes *fakeNotifier
	bot   *Bot
}

func newTestBot(t *testing.T) *deps {
	t.Helper()
	d := &deps{
		api:   &fakeAPI{},
		store: newFakeStore(),
		gate:  &fakeGate{verified: map[int64]bool{}, channels: []string{"a", "b"}},
		notes: &fakeNotifier{},
	}
	self := tgbotapi.User{ID: 1, UserName: "sharebot", IsBot: true}
	d.bot = New(d.api, self, d.store, d.gate, d.notes, testConfig())
	d.bot.sleep = func(time.Duration) {}
	return d
}

// command builds a message whose Command()/CommandArguments() behave like a
// real update.
func command(from *tgbotapi.User, chatID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	return &tgbotapi.Message{
		MessageID: 7,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}

func regularUser() *tgbotapi.User {
	return &tgbotapi.User{ID: 42, UserName: "alice", FirstName: "Alice"}
}

func adminUser() *tgbotapi.User {
	return &tgbotapi.User{ID: 500, UserName: "root", FirstName: "Root"}
}

// buttonRows extracts the inline keyboard of a MessageConfig.
func buttonRows(t *testing.T, m tgbotapi.MessageConfig) [][]tgbotapi.InlineKeyboardButton {
	t.Helper()
	markup, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("message has no inline keyboard: %+v", m)
	}
	return markup.InlineKeyboard
}
