// internal/infra/telegram/client.go
package telegram

import (
	"strings"
	"unicode/utf8"

	"gopkg.in/telebot.v3"
)

// maxMessageLen is Telegram's limit on the text of one message.
const maxMessageLen = 4096

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat, split in several messages
// when it is too long.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := telebot.ChatID(chatID) // The digest chat may be a group
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if _, err := tba.bot.Send(recipient, chunk, options); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most limit bytes, preferring line breaks.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
			// keep multi-byte runes intact
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
