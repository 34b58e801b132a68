package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/counselor"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Login
// ========================

// HandleLogin starts the email/password dialog
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	telegramID := update.Message.From.ID

	if session, err := h.deps.Sessions.Get(ctx, telegramID); err == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ Already linked as <b>"+common.Escape(session.Email)+"</b>.\n\nUse /logout to switch accounts.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔐 <b>Portal login</b>\n\nStep 1 of 2: send the email of your portal account.\n\nUse /cancel to stop.", nil)
}

// ValidateEmail checks the shape of a login email
func (h *Handlers) ValidateEmail(email string) error {
	return h.validate.Var(email, fmt.Sprintf("required,email,max=%d", EmailMaxLength))
}

func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if err := h.ValidateEmail(email); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ That does not look like an email address. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyLoginEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"Step 2 of 2: send your password.\n\n<i>The message is deleted right after sign-in.</i>", nil)
}

func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Never leave the password in the chat history
	h.deleteMessage(ctx, b, update.Message)

	value, ok := h.stateManager.GetData(telegramID, state.KeyLoginEmail)
	email, _ := value.(string)
	if !ok || email == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The login expired. Start again with /login")
		return
	}

	session, err := h.deps.Sessions.Login(ctx, telegramID, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.stateManager.DeleteData(telegramID, state.KeyLoginEmail)
			h.stateManager.SetState(telegramID, state.StateLoginEmail)
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nSend your email again, or /cancel.")
			return
		}
		h.logger.Error("Login failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Portal account linked",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", string(session.Role)))

	text, kb := common.BuildMainMenuScreen(session)
	h.sendMessage(ctx, b, chatID, "✅ Signed in.\n\n"+text, kb)
}

// ========================
// Availability editor
// ========================

// draftFor loads the sender's counselor session and current draft
func (h *Handlers) draftFor(ctx context.Context, b *bot.Bot, update *models.Update) (*model.PortalSession, *service.AvailabilityDraft, bool) {
	session, ok := h.requireCounselor(ctx, b, update)
	if !ok {
		h.stateManager.SetState(update.Message.From.ID, state.StateNone)
		return nil, nil, false
	}

	draft, err := counselor.CurrentDraft(ctx, h.deps, session)
	if err != nil {
		h.logger.Error("Failed to load availability", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, nil, false
	}
	return session, draft, true
}

func (h *Handlers) handleAvailabilitySlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	value, ok := h.stateManager.GetData(telegramID, state.KeyAvailabilityDay)
	day, isInt := value.(int)
	if !ok || !isInt {
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNoDraft))
		return
	}

	_, draft, ok := h.draftFor(ctx, b, update)
	if !ok {
		return
	}

	slot, err := service.ParseSlot(update.Message.Text)
	if err == nil {
		err = draft.AddSlot(day, slot)
	}
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
		return
	}

	counselor.MarkDirty(h.deps, telegramID)
	h.stateManager.DeleteData(telegramID, state.KeyAvailabilityDay)
	h.stateManager.SetState(telegramID, state.StateNone)

	text, kb := counselor.BuildDayScreen(draft, day)
	h.sendMessage(ctx, b, chatID, "✅ Slot added. Save in the editor to publish it.\n\n"+text, kb)
}

func (h *Handlers) handleOverrideDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	today := h.deps.Today()

	date, ok := calendar.ParseLocalDate(strings.TrimSpace(update.Message.Text), today.Location())
	if !ok {
		h.sendError(ctx, b, chatID, "❌ Send the date as YYYY-MM-DD, or /cancel:")
		return
	}
	if calendar.FormatLocalISODate(date) < calendar.FormatLocalISODate(today) {
		h.sendError(ctx, b, chatID, "❌ The date is in the past. Send another one, or /cancel:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyOverrideDate, calendar.FormatLocalISODate(date))
	h.stateManager.SetState(telegramID, state.StateOverrideSlots)

	text, kb := counselor.OverrideSlotsPrompt(date)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// ParseOverride builds a date override from the slots step input; "off" closes the day
func ParseOverride(date, text string) (model.DateOverride, error) {
	if strings.EqualFold(strings.TrimSpace(text), "off") {
		return model.DateOverride{Date: date, IsUnavailable: true, Slots: []model.TimeSlot{}}, nil
	}
	slots, err := service.ParseSlots(text)
	if err != nil {
		return model.DateOverride{}, err
	}
	return model.DateOverride{Date: date, Slots: slots}, nil
}

func (h *Handlers) handleOverrideSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	value, ok := h.stateManager.GetData(telegramID, state.KeyOverrideDate)
	date, isString := value.(string)
	if !ok || !isString {
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNoDraft))
		return
	}

	_, draft, ok := h.draftFor(ctx, b, update)
	if !ok {
		return
	}

	override, err := ParseOverride(date, update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
		return
	}

	draft.SetOverride(override)
	counselor.MarkDirty(h.deps, telegramID)
	h.stateManager.DeleteData(telegramID, state.KeyOverrideDate)
	h.stateManager.SetState(telegramID, state.StateNone)

	text, kb := counselor.BuildOverridesScreen(draft, h.deps.Today().Location())
	h.sendMessage(ctx, b, chatID, "✅ Override set. Save in the editor to publish it.\n\n"+text, kb)
}

// ========================
// Student notes
// ========================

func (h *Handlers) handleAddNote(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	value, ok := h.stateManager.GetData(telegramID, state.KeyNoteStudentID)
	studentID, isString := value.(string)
	if !ok || !isString {
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, chatID, "❌ The note dialog expired. Open the student again via /students")
		return
	}

	content := strings.TrimSpace(update.Message.Text)
	if len([]rune(content)) > NoteMaxLength {
		h.sendError(ctx, b, chatID, "❌ The note is too long. Shorten it and send again, or /cancel:")
		return
	}

	session, ok := h.requireCounselor(ctx, b, update)
	if !ok {
		h.stateManager.SetState(telegramID, state.StateNone)
		return
	}

	if _, err := h.deps.Students.AddNote(ctx, session, studentID, content); err != nil {
		if errors.Is(err, service.ErrEmptyNote) {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+" Send the text, or /cancel:")
			return
		}
		h.logger.Error("Failed to add note", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.DeleteData(telegramID, state.KeyNoteStudentID)
	h.stateManager.SetState(telegramID, state.StateNone)

	text, kb, err := counselor.LoadNotesScreen(ctx, h.deps, session, studentID)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "✅ Note saved.", nil)
		return
	}
	h.sendMessage(ctx, b, chatID, "✅ Note saved.\n\n"+text, kb)
}
