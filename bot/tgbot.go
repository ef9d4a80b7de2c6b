package bot

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/aeg58/crm-v2/internal/lib/sl"
)

// TgBot delivers alert messages to the admin chat. It never polls for
// updates; it only sends.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		t.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
		// Markdown escaping can still trip on odd log payloads, retry plain.
		_, err = t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Error("sending safe message", sl.Err(err))
		}
	}
}

// sanitize escapes the characters MarkdownV2 reserves.
func sanitize(input string) string {
	const reservedChars = "\\`_{}#+-.!|()[]"

	var sanitized strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized.WriteRune('\\')
		}
		sanitized.WriteRune(char)
	}

	return sanitized.String()
}
