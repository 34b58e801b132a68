package counselor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Availability editor callback data
const (
	AvailabilityShow    = "av_show"
	AvailabilityDay     = "av_day:"      // av_day:<weekday>
	AvailabilityToggle  = "av_toggle:"   // av_toggle:<weekday>
	AvailabilitySlotAdd = "av_slot_add:" // av_slot_add:<weekday>
	AvailabilitySlotDel = "av_slot_del:" // av_slot_del:<weekday>:<index>
	AvailabilitySave    = "av_save"
	AvailabilityDiscard = "av_discard"
)

// PreviewDays is the horizon of the "next open dates" preview
const PreviewDays = 14

// weekOrder lists weekdays Monday first, as counselors plan their week
var weekOrder = []int{1, 2, 3, 4, 5, 6, 0}

func slotsText(slots []model.TimeSlot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		parts = append(parts, formatting.FormatTimeRange(s.Start, s.End))
	}
	return strings.Join(parts, ", ")
}

// BuildEditorScreen renders the weekly overview of the draft
func BuildEditorScreen(draft *service.AvailabilityDraft, dirty bool, today time.Time) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🗓 <b>Weekly availability</b>\n\n")

	for _, d := range weekOrder {
		w := draft.Weekly[d]
		if w.Available && len(w.Slots) > 0 {
			fmt.Fprintf(&sb, "🟢 <b>%s</b>: %s\n", w.Day, slotsText(w.Slots))
		} else {
			fmt.Fprintf(&sb, "⚪️ <b>%s</b>: not available\n", w.Day)
		}
	}

	if n := len(draft.Overrides); n > 0 {
		fmt.Fprintf(&sb, "\n📌 %s\n", formatting.Count(n, "date override", "date overrides"))
	}

	open := draft.NextOpenDates(today, PreviewDays)
	if len(open) == 0 {
		fmt.Fprintf(&sb, "\n⚠️ No open dates in the next %d days.", PreviewDays)
	} else {
		dates := make([]string, 0, len(open))
		for _, d := range open {
			dates = append(dates, formatting.FormatDate(d))
		}
		fmt.Fprintf(&sb, "\nNext open dates: %s", strings.Join(dates, "; "))
	}

	if dirty {
		sb.WriteString("\n\n✏️ <i>Unsaved changes</i>")
	}

	days := make([]models.InlineKeyboardButton, 0, len(weekOrder))
	for _, d := range weekOrder {
		label := formatting.WeekdayShort(d)
		if draft.Weekly[d].Available {
			label = "🟢 " + label
		}
		days = append(days, keyboard.Button(label, fmt.Sprintf("%s%d", AvailabilityDay, d)))
	}

	kb := keyboard.NewBuilder().
		Grid(4, days...).
		Row(keyboard.Button("📌 Date overrides", OverridesShow))
	if dirty {
		kb.Row(
			keyboard.Button("💾 Save", AvailabilitySave),
			keyboard.Button("↩️ Discard", AvailabilityDiscard),
		)
	}
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildDayScreen renders one weekday with its slots
func BuildDayScreen(draft *service.AvailabilityDraft, day int) (string, *models.InlineKeyboardMarkup) {
	w := draft.Weekly[day]

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n\n", w.Day)
	switch {
	case !w.Available:
		sb.WriteString("⚪️ Not available")
		if len(w.Slots) > 0 {
			fmt.Fprintf(&sb, " (kept slots: %s)", slotsText(w.Slots))
		}
	case len(w.Slots) == 0:
		sb.WriteString("🟢 Available, but no slots yet. Add one below.")
	default:
		sb.WriteString("🟢 Available\n")
		for i, s := range w.Slots {
			fmt.Fprintf(&sb, "\n%d. %s", i+1, formatting.FormatTimeRange(s.Start, s.End))
		}
	}

	kb := keyboard.NewBuilder()
	for i, s := range w.Slots {
		kb.Row(keyboard.Button("🗑 "+formatting.FormatTimeRange(s.Start, s.End), fmt.Sprintf("%s%d:%d", AvailabilitySlotDel, day, i)))
	}
	toggle := "⚪️ Mark unavailable"
	if !w.Available {
		toggle = "🟢 Mark available"
	}
	kb.Row(
		keyboard.Button("➕ Add slot", fmt.Sprintf("%s%d", AvailabilitySlotAdd, day)),
		keyboard.Button(toggle, fmt.Sprintf("%s%d", AvailabilityToggle, day)),
	)
	kb.AddBackButton(AvailabilityShow)

	return sb.String(), kb.Build()
}

// SlotPrompt is the text prompt of the add-slot dialog
func SlotPrompt(day int) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("➕ <b>New slot for %s</b>\n\nSend the time range as <code>HH:MM-HH:MM</code>, e.g. <code>09:00-12:00</code>.",
		model.WeekdayNames[day])
	kb := keyboard.NewBuilder().
		Row(keyboard.CancelButton(fmt.Sprintf("%s%d", AvailabilityDay, day))).
		Build()
	return text, kb
}

func parseWeekday(data, prefix string) (int, error) {
	day, err := common.ParseIntArg(data, prefix)
	if err != nil {
		return 0, err
	}
	if day < 0 || day > 6 {
		return 0, common.ErrInvalidFormat
	}
	return day, nil
}

// withDraft runs handler with the counselor's current draft
func withDraft(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, handler func(*common.HandlerContext, *service.AvailabilityDraft)) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft, err := CurrentDraft(ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "load availability")
			return
		}
		endPrompt(h, hc.TelegramID)
		handler(hc, draft)
	})
}

func renderEditor(hc *common.HandlerContext, draft *service.AvailabilityDraft, answer string) {
	text, kb := BuildEditorScreen(draft, IsDirty(hc.Handler, hc.TelegramID), hc.Handler.Today())
	common.Render(hc, text, kb, answer)
}

func HandleAvailabilityShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		renderEditor(hc, draft, "")
	})
}

func HandleAvailabilityDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	day, err := parseWeekday(callback.Data, AvailabilityDay)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		text, kb := BuildDayScreen(draft, day)
		common.Render(hc, text, kb, "")
	})
}

func HandleAvailabilityToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	day, err := parseWeekday(callback.Data, AvailabilityToggle)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		if err := draft.ToggleDay(day); err != nil {
			common.HandleError(hc, err, "toggle weekday")
			return
		}
		MarkDirty(h, hc.TelegramID)
		text, kb := BuildDayScreen(draft, day)
		common.Render(hc, text, kb, "")
	})
}

// HandleAvailabilitySlotAdd starts the add-slot text dialog
func HandleAvailabilitySlotAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	day, err := parseWeekday(callback.Data, AvailabilitySlotAdd)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, _ *service.AvailabilityDraft) {
		hc.SetData(state.KeyAvailabilityDay, day)
		hc.SetState(callbacktypes.UserState(state.StateAvailabilitySlot))
		text, kb := SlotPrompt(day)
		common.Render(hc, text, kb, "")
	})
}

func HandleAvailabilitySlotDel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, AvailabilitySlotDel, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	var day, index int
	if _, err := fmt.Sscanf(args[0]+" "+args[1], "%d %d", &day, &index); err != nil || day < 0 || day > 6 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		if err := draft.RemoveSlot(day, index); err != nil {
			common.HandleError(hc, err, "remove slot")
			return
		}
		MarkDirty(h, hc.TelegramID)
		text, kb := BuildDayScreen(draft, day)
		common.Render(hc, text, kb, "Slot removed")
	})
}

// HandleAvailabilitySave validates and uploads the draft
func HandleAvailabilitySave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		saved, err := h.Availability.Save(ctx, hc.Session, draft)
		if err != nil {
			common.HandleError(hc, err, "save availability")
			return
		}

		hc.SetData(state.KeyAvailabilityDraft, saved)
		hc.SetData(state.KeyAvailabilityDirty, false)

		h.Logger.Info("Availability saved from bot", zap.Int64("telegram_id", hc.TelegramID))
		renderEditor(hc, saved, "✅ Availability saved")
	})
}

// HandleAvailabilityDiscard drops local edits and reloads from the portal
func HandleAvailabilityDiscard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		DropDraft(h, hc.TelegramID)
		endPrompt(h, hc.TelegramID)

		draft, err := CurrentDraft(ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "reload availability")
			return
		}
		renderEditor(hc, draft, "Changes discarded")
	})
}
