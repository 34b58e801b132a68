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
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Date override callback data
const (
	OverridesShow = "av_ovrs"
	OverrideAdd   = "av_ovr_add"
	OverrideDel   = "av_ovr_del:" // av_ovr_del:<YYYY-MM-DD>
)

// BuildOverridesScreen lists the draft's date overrides
func BuildOverridesScreen(draft *service.AvailabilityDraft, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📌 <b>Date overrides</b>\n\n")

	if len(draft.Overrides) == 0 {
		sb.WriteString("No overrides. An override replaces the weekly rule for one date.")
	}
	for _, o := range draft.Overrides {
		date := formatting.FormatShortISODate(o.Date, loc)
		if o.IsUnavailable || len(o.Slots) == 0 {
			fmt.Fprintf(&sb, "🔴 %s: unavailable\n", date)
		} else {
			fmt.Fprintf(&sb, "🟡 %s: %s\n", date, slotsText(o.Slots))
		}
	}

	kb := keyboard.NewBuilder()
	for _, o := range draft.Overrides {
		kb.Row(keyboard.Button("🗑 "+formatting.FormatShortISODate(o.Date, loc), OverrideDel+o.Date))
	}
	kb.Row(keyboard.Button("➕ Add override", OverrideAdd))
	kb.AddBackButton(AvailabilityShow)

	return strings.TrimRight(sb.String(), "\n"), kb.Build()
}

// OverrideDatePrompt asks for the date of a new override
func OverrideDatePrompt() (string, *models.InlineKeyboardMarkup) {
	text := "📌 <b>New date override</b>\n\nSend the date as <code>YYYY-MM-DD</code>, e.g. <code>2024-12-24</code>."
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(OverridesShow)).Build()
	return text, kb
}

// OverrideSlotsPrompt asks for the slots of the override on date
func OverrideSlotsPrompt(date time.Time) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("📌 <b>%s</b>\n\n"+
		"Send the available time ranges separated by commas, e.g. <code>09:00-12:00, 14:00-16:00</code>.\n"+
		"Send <code>off</code> to mark the whole day unavailable.",
		formatting.FormatLongDate(date))
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(OverridesShow)).Build()
	return text, kb
}

func HandleOverridesShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		hc.DeleteData(state.KeyOverrideDate)
		text, kb := BuildOverridesScreen(draft, h.Today().Location())
		common.Render(hc, text, kb, "")
	})
}

// HandleOverrideAdd starts the override text dialog
func HandleOverrideAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, _ *service.AvailabilityDraft) {
		hc.SetState(callbacktypes.UserState(state.StateOverrideDate))
		text, kb := OverrideDatePrompt()
		common.Render(hc, text, kb, "")
	})
}

func HandleOverrideDel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, OverrideDel, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *service.AvailabilityDraft) {
		if err := draft.RemoveOverride(args[0]); err != nil {
			common.HandleError(hc, err, "remove override")
			return
		}
		MarkDirty(h, hc.TelegramID)
		text, kb := BuildOverridesScreen(draft, h.Today().Location())
		common.Render(hc, text, kb, "Override removed")
	})
}
