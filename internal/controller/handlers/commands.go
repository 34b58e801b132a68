package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/counselor"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/schedule"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/export"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 <b>Commands</b>\n\n" +
	"/login - Link your portal account\n" +
	"/calendar - Month calendar of your appointments\n" +
	"/appointments - Upcoming appointments\n" +
	"/history - Past appointments\n" +
	"/export - Download your appointments as .ics\n" +
	"/logout - Unlink this Telegram account\n" +
	"/cancel - Cancel the current input\n\n" +
	"<b>Counselors</b>\n" +
	"/availability - Edit weekly availability and date overrides\n" +
	"/students - Your students and notes\n" +
	"/sync - Google Calendar connection"

// HandleStart shows the main menu, or asks to log in
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	session, err := h.deps.Sessions.Get(ctx, update.Message.From.ID)
	if err != nil {
		if !errors.Is(err, service.ErrNotLoggedIn) {
			h.logger.Info("Start without usable session",
				zap.Int64("telegram_id", update.Message.From.ID),
				zap.Error(err))
		}
		text, kb := common.BuildLoggedOutScreen()
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("👋 Hi, %s!\n\n%s", common.Escape(update.Message.From.FirstName), text), kb)
		return
	}

	text, kb := common.BuildMainMenuScreen(session)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel leaves the current text prompt. An availability draft survives it.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nothing to cancel.", nil)
		return
	}

	switch currentState {
	case state.StateLoginEmail, state.StateLoginPassword:
		h.stateManager.DeleteData(telegramID, state.KeyLoginEmail)
	case state.StateAddNote:
		h.stateManager.DeleteData(telegramID, state.KeyNoteStudentID)
	case state.StateOverrideDate, state.StateOverrideSlots:
		h.stateManager.DeleteData(telegramID, state.KeyOverrideDate)
	}
	h.stateManager.SetState(telegramID, state.StateNone)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /help to see the commands.", nil)
}

// HandleLogout unlinks the Telegram account
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	if err := h.deps.Sessions.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Logout failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Logged out. Use /login to link an account again.", nil)
}

// HandleCalendar sends the calendar screen in its stored state
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	viewState, err := h.deps.CalendarViews.Load(ctx, session.TelegramID, h.deps.Today())
	if err != nil {
		h.logger.Warn("Calendar state not loaded", zap.Error(err))
	}

	view, loadErr := schedule.LoadView(ctx, h.deps, session, viewState)
	text, kb := schedule.BuildCalendarScreen(view, session.Role, h.deps.Today().Location())
	if loadErr != nil {
		text = schedule.AppointmentsWarning + text
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)

	if loadErr != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(loadErr))
	}
}

func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendList(ctx, b, update, schedule.ListUpcoming)
}

func (h *Handlers) HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.sendList(ctx, b, update, schedule.ListHistory)
}

func (h *Handlers) sendList(ctx context.Context, b *bot.Bot, update *models.Update, kind schedule.ListKind) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	appointments, err := schedule.LoadList(ctx, h.deps, session, kind)
	if err != nil {
		h.logger.Error("Failed to list appointments", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := schedule.BuildListScreen(kind, appointments, 0, session.Role, h.deps.Today().Location())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleAvailability opens the availability editor
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCounselor(ctx, b, update)
	if !ok {
		return
	}

	draft, err := counselor.CurrentDraft(ctx, h.deps, session)
	if err != nil {
		h.logger.Error("Failed to load availability", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendEditor(ctx, b, update.Message.Chat.ID, session.TelegramID, draft)
}

func (h *Handlers) sendEditor(ctx context.Context, b *bot.Bot, chatID, telegramID int64, draft *service.AvailabilityDraft) {
	text, kb := counselor.BuildEditorScreen(draft, counselor.IsDirty(h.deps, telegramID), h.deps.Today())
	h.sendMessage(ctx, b, chatID, text, kb)
}

func (h *Handlers) HandleStudents(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCounselor(ctx, b, update)
	if !ok {
		return
	}

	page, err := h.deps.Students.Page(ctx, session, service.SortByName, 0, counselor.StudentPageSize)
	if err != nil {
		h.logger.Error("Failed to list students", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}
	h.stateManager.SetData(session.TelegramID, state.KeyStudentSort, page.Sort)
	h.stateManager.SetData(session.TelegramID, state.KeyStudentPage, page.Page)

	text, kb := counselor.BuildStudentListScreen(page)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) HandleSync(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireCounselor(ctx, b, update)
	if !ok {
		return
	}

	status, err := h.deps.CalendarSync.Status(ctx, session)
	if err != nil {
		h.logger.Error("Failed to get calendar status", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := counselor.BuildSyncScreen(status, h.deps.Today())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleExport sends the open appointments as an iCalendar file
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update)
	if !ok {
		return
	}

	appointments, err := h.deps.Appointments.List(ctx, session)
	if err != nil {
		h.logger.Error("Failed to list appointments for export", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	now := h.deps.Today()
	data, count, err := export.Appointments(appointments, export.Options{
		Name:     "Counseling sessions",
		Location: now.Location(),
		Viewer:   session.Role,
		Now:      now,
	})
	if err != nil {
		h.logger.Error("Failed to export appointments", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}
	if count == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nothing to export: you have no upcoming appointments.", nil)
		return
	}

	caption := "📤 " + formatting.Count(count, "appointment", "appointments") + ". Open the file to add them to your calendar."
	if err := h.sendDocument(ctx, b, update.Message.Chat.ID, ExportFilename, data, caption); err != nil {
		h.logger.Error("Failed to send export", zap.Int64("telegram_id", session.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.logger.Info("Appointments exported",
		zap.Int64("telegram_id", session.TelegramID),
		zap.Int("count", count))
}

// HandleTextMessage routes plain text to the active dialog step
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Commands have their own handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	h.logger.Debug("Dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)
	case state.StateAvailabilitySlot:
		h.handleAvailabilitySlot(ctx, b, update)
	case state.StateOverrideDate:
		h.handleOverrideDate(ctx, b, update)
	case state.StateOverrideSlots:
		h.handleOverrideSlots(ctx, b, update)
	case state.StateAddNote:
		h.handleAddNote(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.SetState(telegramID, state.StateNone)
	}
}
