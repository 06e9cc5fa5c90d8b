package channel

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram runs one call over a Telegram chat: outgoing prompts are bot
// messages, Collect blocks until the caller's next message in that chat.
type Telegram struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	updates tgbotapi.UpdatesChannel
}

// NewTelegram creates a Telegram channel bound to one chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return &Telegram{
		api:     api,
		chatID:  chatID,
		updates: api.GetUpdatesChan(u),
	}, nil
}

func (t *Telegram) Prompt(message string) {
	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.api.Send(msg); err != nil {
		log.Printf("telegram: failed to send prompt: %v", err)
	}
}

func (t *Telegram) Collect(promptText string) (string, error) {
	t.Prompt(promptText)

	for update := range t.updates {
		if update.Message == nil || update.Message.Chat.ID != t.chatID {
			continue
		}
		return strings.TrimSpace(update.Message.Text), nil
	}
	return "", fmt.Errorf("telegram update stream closed")
}
