package spark

import (
	"bytes"
	"context"

	tele "gopkg.in/telebot.v4"
)

// Transport abstracts the outbound messaging operations the finalizer needs.
// Calls are single best-effort attempts; the service decides fallback behavior.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error
	SendPhotoFile(ctx context.Context, chatID int64, fileID, caption string) error
	SendPhotoBytes(ctx context.Context, chatID int64, data []byte, caption string) error
}

// BotTransport implements Transport on a telebot bot instance.
type BotTransport struct {
	bot *tele.Bot
}

// NewBotTransport wraps the given bot.
func NewBotTransport(bot *tele.Bot) *BotTransport {
	return &BotTransport{bot: bot}
}

// SendText delivers a plain text message, optionally with a reply keyboard.
func (t *BotTransport) SendText(_ context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if markup != nil {
		_, err := t.bot.Send(tele.ChatID(chatID), text, markup)
		return err
	}
	_, err := t.bot.Send(tele.ChatID(chatID), text)
	return err
}

// SendPhotoFile delivers a photo by its Telegram file reference with a caption.
func (t *BotTransport) SendPhotoFile(_ context.Context, chatID int64, fileID, caption string) error {
	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
	_, err := t.bot.Send(tele.ChatID(chatID), photo)
	return err
}

// SendPhotoBytes delivers a photo from raw bytes with a caption.
func (t *BotTransport) SendPhotoBytes(_ context.Context, chatID int64, data []byte, caption string) error {
	photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(data)), Caption: caption}
	_, err := t.bot.Send(tele.ChatID(chatID), photo)
	return err
}
