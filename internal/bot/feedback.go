// Package bot – /feedback and /help.
package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleFeedback relays user feedback to the admin channel.
func (b *Bot) handleFeedback(msg *tgbotapi.Message) {
	feedback := strings.TrimSpace(msg.CommandArguments())
	if feedback == "" {
		b.reply(msg, "Please provide your feedback after the command.\n"+
			"Example: /feedback This bot is great!")
		return
	}

	user := msg.From
	b.notifier.Notify(fmt.Sprintf(
		"💬 New Feedback Received\n\n"+
			"👤 User: %s\n🆔 ID: %d\n📝 Feedback: %s",
		user.FirstName, user.ID, feedback))

	b.reply(msg, "✅ Thank you for your feedback!")
}

const helpText = `📂 Welcome to the File Share Bot!

This bot allows you to upload files and retrieve them via links.

🔑 Commands:

1. /start - Start the bot and initialize the connection.
2. /help - Show this help message.
3. /stats - (Admin only) Check the total number of users.
4. /check <file_id> - (Admin only) Check file stats using the file ID.
5. /broadcast <message> - (Admin only) Send a message to all users.
6. /feedback <your feedback> - Send feedback to the bot creator.

📌 Important Notes:
- You must join all the required channels to use the bot.
- After uploading a file, you will receive a unique file link.
- Share the file link with anyone to allow them to download the file.

⚠️ Feedback:
If you encounter any issues or have suggestions, send your feedback using /feedback <your message>.`

// handleHelp sends the command overview.
func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.reply(msg, helpText)
}
