package telegram

import "gopkg.in/telebot.v3"

// Client sends messages to a Telegram chat. The digest service depends on this
// instead of the bot so it can run against a fake in tests.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
