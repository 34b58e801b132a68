package common

import (
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBackToMain drops any dialog in progress and shows the main menu in place
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	if err := hc.LoadSession(); err != nil {
		h.Logger.Debug("Main menu without session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		text, kb := BuildLoggedOutScreen()
		Render(hc, text, kb, "")
		return
	}

	text, kb := BuildMainMenuScreen(hc.Session)
	Render(hc, text, kb, "")
}

// HandleNoop acknowledges presses on label buttons
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	AnswerCallback(ctx, b, callback.ID, "")
}
