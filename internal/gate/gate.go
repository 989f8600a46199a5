// Package gate implements the mandatory channel-membership checks that
// protect every user-facing workflow. A user is verified only when they are
// a member (or administrator, or owner) of every required channel; any
// platform failure counts as "not a member" so that the gate fails closed.
package gate

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// ChatMemberAPI is the single platform call the gate depends on.
// *tgbotapi.BotAPI satisfies it.
type ChatMemberAPI interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Checker answers membership questions against a fixed list of required
// channels. It is safe for concurrent use.
type Checker struct {
	api      ChatMemberAPI
	channels []string
}

// NewChecker builds a Checker over the given required-channel handles
// (without the leading "@").
func NewChecker(api ChatMemberAPI, channels []string) *Checker {
	return &Checker{api: api, channels: channels}
}

// Channels returns the required-channel list, in gate-evaluation order.
func (c *Checker) Channels() []string { return c.channels }

// IsMember reports whether userID currently belongs to channel. Owner and
// administrator count as members. A user the platform does not know as a
// participant yields false without logging; an invalid channel identifier
// and any other platform error yield false with an error log (fail closed).
func (c *Checker) IsMember(userID int64, channel string) bool {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: "@" + channel,
			UserID:             userID,
		},
	})
	if err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "chat not found"), strings.Contains(msg, "channel is invalid"):
			log.Error().Str("channel", channel).Msg("invalid required channel")
		case strings.Contains(msg, "user not found"), strings.Contains(msg, "participant"), strings.Contains(msg, "member not found"):
			// Unknown participant: plain "no", not an operational error.
		default:
			log.Error().Err(err).Str("channel", channel).Int64("user_id", userID).Msg("membership check failed")
		}
		return false
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return true
	default:
		return false
	}
}

// IsFullyVerified reports whether userID is a member of every required
// channel. Channels are evaluated in list order and the check short-circuits
// on the first failure. An empty channel list verifies trivially.
func (c *Checker) IsFullyVerified(userID int64) bool {
	for _, ch := range c.channels {
		if !c.IsMember(userID, ch) {
			return false
		}
	}
	return true
}
