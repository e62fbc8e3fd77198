package bot

import (
	"testing"

	"github.com/futig/legaldoc-assistant/internal/telegram/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Command(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 5,
		From:      &tgbotapi.User{ID: 1},
		Chat:      &tgbotapi.Chat{ID: 2},
		Text:      "/start de",
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}

	msg, key, ok := normalize(update)
	require.True(t, ok)
	assert.Equal(t, handlers.HandlerStateCommand, key)
	assert.Equal(t, "start", msg.Command)
	assert.Equal(t, "de", msg.Arguments)
	assert.Equal(t, int64(1), msg.UserID)
	assert.Equal(t, int64(2), msg.ChatID)
}

func TestNormalize_Text(t *testing.T) {
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 2},
		Text: "I need an NDA",
	}}

	msg, key, ok := normalize(update)
	require.True(t, ok)
	assert.Equal(t, handlers.HandlerStateConversation, key)
	assert.Equal(t, "I need an NDA", msg.Text)
	assert.Empty(t, msg.Command)
}

func TestNormalize_Callback(t *testing.T) {
	update := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: 1},
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: 2}},
		Data:    "dl:pdf",
	}}

	msg, key, ok := normalize(update)
	require.True(t, ok)
	assert.Equal(t, handlers.HandlerStateCallback, key)
	assert.Equal(t, "dl:pdf", msg.CallbackData)
	assert.Equal(t, "cb", msg.CallbackID)
}

func TestNormalize_Ignored(t *testing.T) {
	_, _, ok := normalize(tgbotapi.Update{UpdateID: 1})
	assert.False(t, ok)
}
