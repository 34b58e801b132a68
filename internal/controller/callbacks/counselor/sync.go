package counselor

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Google Calendar sync callback data
const (
	SyncShow          = "sync_show"
	SyncConnect       = "sync_connect"
	SyncNow           = "sync_now"
	SyncDisconnectAsk = "sync_disconnect_ask"
	SyncDisconnect    = "sync_disconnect"
)

// BuildSyncScreen renders the Google Calendar link status
func BuildSyncScreen(status *model.CalendarSyncStatus, now time.Time) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🔄 <b>Google Calendar</b>\n\n")

	kb := keyboard.NewBuilder()
	if status == nil || !status.Connected {
		sb.WriteString("Not connected. Connect your Google Calendar to get confirmed sessions there automatically.")
		kb.Row(keyboard.Button("🔗 Connect", SyncConnect))
	} else {
		sb.WriteString("✅ Connected")
		if status.ConnectedAt != nil {
			sb.WriteString(" since " + formatting.FormatDateTime(status.ConnectedAt.In(now.Location())))
		}
		if status.SyncEnabled {
			sb.WriteString("\n🔁 Sync is on")
		} else {
			sb.WriteString("\n⏸ Sync is paused")
		}
		if status.LastSyncAt != nil {
			sb.WriteString("\n🕘 Last sync: " + formatting.RelativeTime(status.LastSyncAt.In(now.Location()), now))
		} else {
			sb.WriteString("\n🕘 Never synced")
		}
		kb.Row(
			keyboard.Button("🔄 Sync now", SyncNow),
			keyboard.Button("⛓️‍💥 Disconnect", SyncDisconnectAsk),
		)
	}
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

func renderSync(hc *common.HandlerContext, answer string) {
	status, err := hc.Handler.CalendarSync.Status(hc.Ctx, hc.Session)
	if err != nil {
		common.HandleError(hc, err, "calendar sync status")
		return
	}
	text, kb := BuildSyncScreen(status, hc.Handler.Today())
	common.Render(hc, text, kb, answer)
}

func HandleSyncShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		renderSync(hc, "")
	})
}

// HandleSyncConnect shows the Google authorization link
func HandleSyncConnect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		url, err := h.CalendarSync.ConnectURL(ctx, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "calendar connect url")
			return
		}

		text := "🔗 <b>Connect Google Calendar</b>\n\n" +
			"Open the link, allow access and come back here. You will get a message once the calendar is linked."
		kb := keyboard.NewBuilder().
			Row(keyboard.URLButton("Open Google authorization", url)).
			AddBackButton(SyncShow).
			Build()
		common.Render(hc, text, kb, "")
	})
}

func HandleSyncNow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.CalendarSync.SyncNow(ctx, hc.Session); err != nil {
			common.HandleError(hc, err, "calendar sync")
			return
		}
		h.Logger.Info("Calendar sync requested", zap.Int64("telegram_id", hc.TelegramID))
		renderSync(hc, "✅ Sync started")
	})
}

func HandleSyncDisconnectAsk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text := "⛓️‍💥 <b>Disconnect Google Calendar?</b>\n\nSessions will no longer be copied to your calendar."
		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(SyncDisconnect, SyncShow)).
			Build()
		common.Render(hc, text, kb, "")
	})
}

func HandleSyncDisconnect(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.CalendarSync.Disconnect(ctx, hc.Session); err != nil {
			common.HandleError(hc, err, "calendar disconnect")
			return
		}
		renderSync(hc, "Disconnected")
	})
}
