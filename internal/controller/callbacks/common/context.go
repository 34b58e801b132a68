package common

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext bundles what a callback handler needs: the update, the
// message to edit and the caller's portal session once loaded.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *model.PortalSession
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession loads the linked portal session, refreshing it when needed
func (hc *HandlerContext) LoadSession() error {
	session, err := hc.Handler.Sessions.Get(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Session = session
	return nil
}

func (hc *HandlerContext) RequireSession() error {
	if hc.Session == nil {
		return hc.LoadSession()
	}
	return nil
}

func (hc *HandlerContext) RequireCounselor() error {
	if err := hc.RequireSession(); err != nil {
		return err
	}
	if !hc.Session.IsCounselor() {
		return ErrNotCounselor
	}
	return nil
}

func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage replaces the text and keyboard of the callback's message
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})

	// Pressing the same button twice is not an error
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})

	return err
}

func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

// SendPhoto uploads a PNG into the chat
func (hc *HandlerContext) SendPhoto(filename string, data []byte, caption string) error {
	_, err := hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID:    hc.ChatID,
		Photo:     &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

func (hc *HandlerContext) GetData(key string) (interface{}, bool) {
	return hc.Handler.StateManager.GetData(hc.TelegramID, key)
}

func (hc *HandlerContext) DeleteData(key string) {
	hc.Handler.StateManager.DeleteData(hc.TelegramID, key)
}
