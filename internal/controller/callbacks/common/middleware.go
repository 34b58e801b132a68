package common

import (
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithSession builds a HandlerContext with the caller's portal session.
// Without a usable session the user gets an alert and handler is not called.
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadSession(); err != nil {
		h.Logger.Warn("Session check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithCounselor is WithSession restricted to counselor accounts
func WithCounselor(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireCounselor(); err != nil {
		h.Logger.Warn("Counselor check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError logs a failed operation and alerts the user
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// Render edits the callback message into a screen and acknowledges the press
func Render(hc *HandlerContext, text string, keyboard *models.InlineKeyboardMarkup, answer string) {
	if err := hc.EditMessage(text, keyboard); err != nil {
		HandleError(hc, err, "edit message")
		return
	}
	hc.Answer(answer)
}
