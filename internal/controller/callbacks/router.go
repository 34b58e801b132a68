package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/counselor"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Common callbacks
const (
	BackToMain = "back_to_main"
)

// Route dispatches a callback query by its data prefix
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == keyboard.Noop:
		common.HandleNoop(ctx, b, callback)

	// ===== Calendar =====
	case data == schedule.CalendarShow:
		schedule.HandleCalendarShow(ctx, b, callback, h)
	case data == schedule.CalendarImage:
		schedule.HandleCalendarImage(ctx, b, callback, h)
	case strings.HasPrefix(data, schedule.CalendarAction):
		schedule.HandleCalendarAction(ctx, b, callback, h)

	// ===== Appointments =====
	case strings.HasPrefix(data, schedule.AppointmentView):
		schedule.HandleAppointmentView(ctx, b, callback, h)
	case strings.HasPrefix(data, schedule.AppointmentAskDo):
		schedule.HandleAppointmentAsk(ctx, b, callback, h)
	case strings.HasPrefix(data, schedule.AppointmentDo):
		schedule.HandleAppointmentDo(ctx, b, callback, h)
	case strings.HasPrefix(data, schedule.UpcomingPage):
		schedule.HandleUpcomingPage(ctx, b, callback, h)
	case strings.HasPrefix(data, schedule.HistoryPage):
		schedule.HandleHistoryPage(ctx, b, callback, h)

	// ===== Counselor: Availability =====
	case data == counselor.AvailabilityShow:
		counselor.HandleAvailabilityShow(ctx, b, callback, h)
	case data == counselor.AvailabilitySave:
		counselor.HandleAvailabilitySave(ctx, b, callback, h)
	case data == counselor.AvailabilityDiscard:
		counselor.HandleAvailabilityDiscard(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.AvailabilityDay):
		counselor.HandleAvailabilityDay(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.AvailabilityToggle):
		counselor.HandleAvailabilityToggle(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.AvailabilitySlotAdd):
		counselor.HandleAvailabilitySlotAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.AvailabilitySlotDel):
		counselor.HandleAvailabilitySlotDel(ctx, b, callback, h)
	case data == counselor.OverridesShow:
		counselor.HandleOverridesShow(ctx, b, callback, h)
	case data == counselor.OverrideAdd:
		counselor.HandleOverrideAdd(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.OverrideDel):
		counselor.HandleOverrideDel(ctx, b, callback, h)

	// ===== Counselor: Google Calendar =====
	case data == counselor.SyncShow:
		counselor.HandleSyncShow(ctx, b, callback, h)
	case data == counselor.SyncConnect:
		counselor.HandleSyncConnect(ctx, b, callback, h)
	case data == counselor.SyncNow:
		counselor.HandleSyncNow(ctx, b, callback, h)
	case data == counselor.SyncDisconnectAsk:
		counselor.HandleSyncDisconnectAsk(ctx, b, callback, h)
	case data == counselor.SyncDisconnect:
		counselor.HandleSyncDisconnect(ctx, b, callback, h)

	// ===== Counselor: Students =====
	case strings.HasPrefix(data, counselor.StudentList):
		counselor.HandleStudentList(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.StudentView):
		counselor.HandleStudentView(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.StudentStatus):
		counselor.HandleStudentStatus(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.StudentNotes):
		counselor.HandleStudentNotes(ctx, b, callback, h)
	case strings.HasPrefix(data, counselor.StudentNoteAdd):
		counselor.HandleStudentNoteAdd(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "⚠️ This button is no longer supported")
	}
}
