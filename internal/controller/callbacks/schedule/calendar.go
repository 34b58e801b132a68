package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Calendar callback data
const (
	CalendarAction = "cal:"     // cal:prev, cal:select=2024-03-15
	CalendarShow   = "cal_show" // current stored state
	CalendarImage  = "cal_img"  // month as picture
)

// maxListedAppointments caps the appointment buttons under the grid
const maxListedAppointments = 8

// LoadView fetches everything the calendar screen needs for a state.
// The fetches are independent: the returned view is always renderable, and a
// non-nil error reports that the appointments could not be loaded.
// Availability is fetched separately for counselors; its failure only hides the markers.
func LoadView(ctx context.Context, h *callbacktypes.Handler, session *model.PortalSession, state calendar.ViewState) (calendar.View, error) {
	appointments, listErr := h.Appointments.List(ctx, session)
	if listErr != nil {
		h.Logger.Warn("Appointments not loaded for calendar",
			zap.Int64("telegram_id", session.TelegramID),
			zap.Error(listErr))
	}

	var availability *calendar.AvailabilityData
	if session.IsCounselor() {
		draft, err := h.Availability.Load(ctx, session)
		if err != nil {
			h.Logger.Warn("Availability not loaded for calendar",
				zap.Int64("telegram_id", session.TelegramID),
				zap.Error(err))
		} else {
			availability = &calendar.AvailabilityData{Weekly: draft.Weekly, Overrides: draft.Overrides}
		}
	}

	return calendar.Project(state, appointments, availability, h.Today()), listErr
}

// AppointmentsWarning heads the screen when the appointment list is missing
const AppointmentsWarning = "⚠️ Appointments could not be loaded.\n\n"

// BuildCalendarScreen renders the month grid with the selected-date or upcoming panel
func BuildCalendarScreen(view calendar.View, viewer model.Role, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 <b>%s</b>\n\n", formatting.FormatMonth(view.State.Year, view.State.Month))

	if view.State.Selected != nil {
		fmt.Fprintf(&sb, "<b>%s</b>\n", formatting.FormatLongDate(*view.State.Selected))
	}
	fmt.Fprintf(&sb, "%s · %s\n", view.Title, formatting.Count(len(view.Appointments), "appointment", "appointments"))

	if view.Selected != nil {
		sb.WriteString(availabilityLine(*view.Selected))
		sb.WriteString("\n")
	}

	if len(view.Appointments) == 0 {
		if view.State.Selected != nil {
			sb.WriteString("\nNo appointments on this day.")
		} else {
			sb.WriteString("\nNo upcoming appointments.")
		}
	} else {
		sb.WriteString("\n")
		for i := range view.Appointments {
			if i == maxListedAppointments {
				fmt.Fprintf(&sb, "… and %d more\n", len(view.Appointments)-i)
				break
			}
			a := &view.Appointments[i]
			if view.State.Selected == nil {
				sb.WriteString(formatting.FormatShortISODate(a.ScheduledDate, loc) + " ")
			}
			sb.WriteString(formatting.AppointmentLine(a, viewer))
			sb.WriteString("\n")
		}
	}

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.MonthPagination(
		CalendarAction+calendar.Action{Kind: calendar.ActionPrev}.Encode(),
		formatting.FormatMonth(view.State.Year, view.State.Month),
		CalendarAction+calendar.Action{Kind: calendar.ActionNext}.Encode(),
	)...)

	header := make([]models.InlineKeyboardButton, 0, calendar.DaysInWeek)
	for d := 0; d < calendar.DaysInWeek; d++ {
		header = append(header, keyboard.LabelButton(formatting.WeekdayShort(d)))
	}
	kb.AddRow(header)

	for _, week := range view.Weeks {
		row := make([]models.InlineKeyboardButton, 0, calendar.DaysInWeek)
		for _, day := range week {
			row = append(row, dayButton(day))
		}
		for len(row) < calendar.DaysInWeek {
			row = append(row, keyboard.LabelButton(" "))
		}
		kb.AddRow(row)
	}

	for i := range view.Appointments {
		if i == maxListedAppointments {
			break
		}
		a := &view.Appointments[i]
		kb.Row(keyboard.Button(formatting.AppointmentButton(a, view.State.Selected == nil, loc), AppointmentView+a.ID))
	}

	controls := []models.InlineKeyboardButton{
		keyboard.Button("📍 Today", CalendarAction+calendar.Action{Kind: calendar.ActionToday}.Encode()),
	}
	if view.State.HasSelection() {
		controls = append(controls, keyboard.Button("✖️ Clear", CalendarAction+calendar.Action{Kind: calendar.ActionClear}.Encode()))
	}
	controls = append(controls, keyboard.Button("🖼 Image", CalendarImage))
	kb.Row(controls...)
	kb.AddBackToMainButton()

	return strings.TrimRight(sb.String(), "\n"), kb.Build()
}

// dayButton marks today with ·d·, the selection with [d] and busy days with a dot
func dayButton(day calendar.DayView) models.InlineKeyboardButton {
	if day.IsBlank() {
		return keyboard.LabelButton(" ")
	}

	label := strconv.Itoa(day.Date.Day())
	switch {
	case day.IsSelected:
		label = "[" + label + "]"
	case day.IsToday:
		label = "·" + label + "·"
	}
	if day.Appointments > 0 {
		label += "•"
	}
	if day.Availability != nil && !day.Availability.IsAvailable {
		label += "⁻"
	}

	action := calendar.Action{Kind: calendar.ActionSelect, Date: calendar.FormatLocalISODate(day.Date)}
	return keyboard.Button(label, CalendarAction+action.Encode())
}

func availabilityLine(res calendar.Resolution) string {
	prefix := "🟢 Available"
	if res.IsOverride {
		prefix = "🟡 Override"
	}
	if !res.IsAvailable {
		if res.IsOverride {
			return "🔴 Unavailable (override)"
		}
		return "⚪️ Not available"
	}

	slots := make([]string, 0, len(res.Slots))
	for _, s := range res.Slots {
		slots = append(slots, formatting.FormatTimeRange(s.Start, s.End))
	}
	return prefix + ": " + strings.Join(slots, ", ")
}

// HandleCalendarShow renders the stored calendar state
func HandleCalendarShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		state, err := h.CalendarViews.Load(ctx, hc.TelegramID, h.Today())
		if err != nil {
			h.Logger.Warn("Calendar state not loaded", zap.Error(err))
		}
		renderCalendar(hc, state)
	})
}

// HandleCalendarAction applies a navigation or selection action
func HandleCalendarAction(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	action, err := calendar.ParseAction(strings.TrimPrefix(callback.Data, CalendarAction))
	if err != nil {
		h.Logger.Warn("Invalid calendar action", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		state, err := h.CalendarViews.Apply(ctx, hc.TelegramID, action, h.Today())
		if err != nil {
			// The reduced state is still renderable, it just is not stored
			h.Logger.Error("Calendar state not persisted", zap.Error(err))
		}
		renderCalendar(hc, state)
	})
}

// HandleCalendarImage sends the visible month as a picture
func HandleCalendarImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		state, err := h.CalendarViews.Load(ctx, hc.TelegramID, h.Today())
		if err != nil {
			h.Logger.Warn("Calendar state not loaded", zap.Error(err))
		}

		view, loadErr := LoadView(ctx, h, hc.Session, state)

		data, err := common.GenerateMonthImage(view)
		if err != nil {
			common.HandleError(hc, err, "render month image")
			return
		}

		caption := imageCaption(view)
		if loadErr != nil {
			caption = AppointmentsWarning + caption
		}
		if err := hc.SendPhoto(fmt.Sprintf("calendar-%d-%02d.png", state.Year, state.Month), data, caption); err != nil {
			common.HandleError(hc, err, "send month image")
			return
		}
		if loadErr != nil {
			hc.AnswerAlert(common.ErrorMessage(loadErr))
			return
		}
		hc.Answer("")
	})
}

func renderCalendar(hc *common.HandlerContext, state calendar.ViewState) {
	view, loadErr := LoadView(hc.Ctx, hc.Handler, hc.Session, state)
	text, kb := BuildCalendarScreen(view, hc.Session.Role, hc.Handler.Today().Location())
	if loadErr == nil {
		common.Render(hc, text, kb, "")
		return
	}

	if err := hc.EditMessage(AppointmentsWarning+text, kb); err != nil {
		common.HandleError(hc, err, "edit message")
		return
	}
	hc.AnswerAlert(common.ErrorMessage(loadErr))
}

// imageCaption summarizes the month shown in the picture
func imageCaption(view calendar.View) string {
	return fmt.Sprintf("📅 <b>%s</b> · %s",
		formatting.FormatMonth(view.State.Year, view.State.Month),
		formatting.Count(len(view.Month), "appointment", "appointments"))
}
