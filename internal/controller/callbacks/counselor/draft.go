package counselor

import (
	"context"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/service"
)

// CurrentDraft returns the availability draft being edited, loading it from
// the backend on first use.
func CurrentDraft(ctx context.Context, h *callbacktypes.Handler, session *model.PortalSession) (*service.AvailabilityDraft, error) {
	if value, ok := h.StateManager.GetData(session.TelegramID, state.KeyAvailabilityDraft); ok {
		if draft, ok := value.(*service.AvailabilityDraft); ok {
			return draft, nil
		}
	}

	draft, err := h.Availability.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	h.StateManager.SetData(session.TelegramID, state.KeyAvailabilityDraft, draft)
	h.StateManager.SetData(session.TelegramID, state.KeyAvailabilityDirty, false)
	return draft, nil
}

// MarkDirty flags the draft as having unsaved changes
func MarkDirty(h *callbacktypes.Handler, telegramID int64) {
	h.StateManager.SetData(telegramID, state.KeyAvailabilityDirty, true)
}

// IsDirty reports whether the draft has unsaved changes
func IsDirty(h *callbacktypes.Handler, telegramID int64) bool {
	value, ok := h.StateManager.GetData(telegramID, state.KeyAvailabilityDirty)
	if !ok {
		return false
	}
	dirty, _ := value.(bool)
	return dirty
}

// DropDraft forgets the draft so the next screen reloads it
func DropDraft(h *callbacktypes.Handler, telegramID int64) {
	h.StateManager.DeleteData(telegramID, state.KeyAvailabilityDraft)
	h.StateManager.DeleteData(telegramID, state.KeyAvailabilityDirty)
	h.StateManager.DeleteData(telegramID, state.KeyAvailabilityDay)
	h.StateManager.DeleteData(telegramID, state.KeyOverrideDate)
}

// endPrompt leaves any text prompt but keeps the draft
func endPrompt(h *callbacktypes.Handler, telegramID int64) {
	h.StateManager.SetState(telegramID, callbacktypes.UserState(state.StateNone))
}
