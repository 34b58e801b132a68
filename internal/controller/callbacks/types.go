package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler wraps callbacktypes.Handler with the entry point
type Handler struct {
	*callbacktypes.Handler
}

type StateManager = callbacktypes.StateManager

// Services groups the use-cases the callback screens need
type Services struct {
	Sessions      *service.SessionService
	Appointments  *service.AppointmentService
	Availability  *service.AvailabilityService
	CalendarSync  *service.CalendarSyncService
	Students      *service.StudentService
	CalendarViews *service.CalendarViewService
}

func NewHandler(
	services Services,
	stateManager callbacktypes.StateManager,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		Sessions:      services.Sessions,
		Appointments:  services.Appointments,
		Availability:  services.Availability,
		CalendarSync:  services.CalendarSync,
		Students:      services.Students,
		CalendarViews: services.CalendarViews,
		StateManager:  stateManager,
		Location:      loc,
		Logger:        logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery is the bot entry point for inline button presses
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
