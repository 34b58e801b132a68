package common

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert answers with a popup instead of a toast
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseArgs strips prefix from data and splits the rest on ':'.
// "appt_do:confirm:a1" with prefix "appt_do:" and n=2 -> ["confirm", "a1"]
func ParseArgs(data, prefix string, n int) ([]string, error) {
	if !strings.HasPrefix(data, prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	parts := strings.SplitN(strings.TrimPrefix(data, prefix), ":", n)
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return parts, nil
}

// ParseIntArg parses a single integer argument after prefix
func ParseIntArg(data, prefix string) (int, error) {
	parts, err := ParseArgs(data, prefix, 1)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return v, nil
}

// IsMessageNotModifiedError matches Telegram's reply to an edit without changes
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// Escape escapes text for HTML parse mode
func Escape(s string) string {
	return html.EscapeString(s)
}
