// Package link implements the deep-link payload codec used to address shared
// files. A payload is the fixed-prefix string "file_<id>" carried as the
// start parameter of the bot's contact link; <id> is the archive-channel
// message id of the file.
package link

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// payloadPrefix is the fixed prefix of every share payload.
const payloadPrefix = "file_"

// ErrInvalidPayload is returned by Decode when the payload does not carry
// the expected prefix or the suffix is not a valid integer message id.
var ErrInvalidPayload = errors.New("invalid file payload")

// Encode produces the start-parameter payload for a file id.
func Encode(fileID int) string {
	return payloadPrefix + strconv.Itoa(fileID)
}

// Decode strips the payload prefix and parses the remainder as a message id.
// It returns ErrInvalidPayload when the prefix is missing or the remainder is
// not an integer.
func Decode(payload string) (int, error) {
	rest, ok := strings.CutPrefix(payload, payloadPrefix)
	if !ok {
		return 0, ErrInvalidPayload
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, ErrInvalidPayload
	}
	return id, nil
}

// IsPayload reports whether s looks like a share payload. It only checks the
// prefix; Decode still validates the suffix.
func IsPayload(s string) bool {
	return strings.HasPrefix(s, payloadPrefix)
}

// DeepLink builds the shareable contact link for a file, e.g.
// "https://t.me/mybot?start=file_42".
func DeepLink(botUsername string, fileID int) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, Encode(fileID))
}

// ArchiveLink builds the private-channel permalink for an archived message,
// e.g. "https://t.me/c/1234567890/42". Private channel ids are prefixed with
// -100 on the Bot API; the permalink form drops that prefix.
func ArchiveLink(channelID int64, fileID int) string {
	short := strings.TrimPrefix(strconv.FormatInt(channelID, 10), "-100")
	return fmt.Sprintf("https://t.me/c/%s/%d", short, fileID)
}
