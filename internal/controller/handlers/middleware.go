package handlers

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession loads the sender's portal session or tells them to log in
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.PortalSession, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	session, err := h.deps.Sessions.Get(ctx, telegramID)
	if err != nil {
		h.logger.Info("Command without usable session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, false
	}

	return session, true
}

// requireCounselor is requireSession restricted to counselor accounts
func (h *Handlers) requireCounselor(ctx context.Context, b *bot.Bot, update *models.Update) (*model.PortalSession, bool) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if !session.IsCounselor() {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrNotCounselor))
		return nil, false
	}

	return session, true
}

// sendError sends an error text and logs if that fails
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage sends an HTML message with an optional keyboard
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendDocument uploads a file into the chat
func (h *Handlers) sendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:    chatID,
		Document:  &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// deleteMessage removes a user message, used for passwords
func (h *Handlers) deleteMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		h.logger.Warn("Failed to delete message",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("message_id", msg.ID),
			zap.Error(err))
	}
}
