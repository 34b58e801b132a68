package schedule

import (
	"context"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Appointment callback data
const (
	AppointmentView   = "appt:"     // appt:<id>
	AppointmentDo     = "appt_do:"  // appt_do:<action>:<id>
	AppointmentAskDo  = "appt_ask:" // appt_ask:<action>:<id>, confirmation step
)

// BuildAppointmentScreen renders the details with the actions the viewer may take
func BuildAppointmentScreen(a *model.Appointment, viewer model.Role, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := formatting.AppointmentDetails(a, viewer, loc)

	kb := keyboard.NewBuilder()
	for _, action := range service.AllowedActions(viewer, a) {
		display := formatting.Action(action)
		data := AppointmentDo + string(action) + ":" + a.ID
		if action == portalapi.ActionCancel {
			data = AppointmentAskDo + string(action) + ":" + a.ID
		}
		kb.Row(keyboard.Button(display.Button, data))
	}
	kb.AddBackButton(CalendarShow)

	return text, kb.Build()
}

// BuildConfirmActionScreen asks before an irreversible action
func BuildConfirmActionScreen(a *model.Appointment, viewer model.Role, action portalapi.AppointmentAction, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := formatting.AppointmentDetails(a, viewer, loc) + "\n\n❓ " + formatting.Action(action).Button + "?"

	kb := keyboard.NewBuilder().
		AddRows(keyboard.YesNoButtons(AppointmentDo+string(action)+":"+a.ID, AppointmentView+a.ID)).
		Build()

	return text, kb
}

// HandleAppointmentView shows one appointment
func HandleAppointmentView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, AppointmentView, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, err := h.Appointments.Get(ctx, hc.Session, args[0])
		if err != nil {
			common.HandleError(hc, err, "get appointment")
			return
		}
		text, kb := BuildAppointmentScreen(a, hc.Session.Role, h.Today().Location())
		common.Render(hc, text, kb, "")
	})
}

// HandleAppointmentAsk shows the confirmation step of an action
func HandleAppointmentAsk(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, AppointmentAskDo, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	action := portalapi.AppointmentAction(args[0])

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		a, err := h.Appointments.Get(ctx, hc.Session, args[1])
		if err != nil {
			common.HandleError(hc, err, "get appointment")
			return
		}
		text, kb := BuildConfirmActionScreen(a, hc.Session.Role, action, h.Today().Location())
		common.Render(hc, text, kb, "")
	})
}

// HandleAppointmentDo runs a status action and shows the updated appointment
func HandleAppointmentDo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, AppointmentDo, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	action := portalapi.AppointmentAction(args[0])
	id := args[1]

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		updated, err := h.Appointments.Apply(ctx, hc.Session, id, action)
		if err != nil {
			common.HandleError(hc, err, "apply appointment action")
			return
		}

		h.Logger.Info("Appointment updated",
			zap.String("appointment_id", id),
			zap.String("action", string(action)),
			zap.String("status", string(updated.Status)),
			zap.Int64("telegram_id", hc.TelegramID))

		text, kb := BuildAppointmentScreen(updated, hc.Session.Role, h.Today().Location())
		common.Render(hc, text, kb, formatting.Action(action).Done)
	})
}
