package state

import (
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
)

// Adapter exposes Manager through callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(telegramID))
}

func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.sm.SetState(telegramID, UserState(state))
}

func (a *Adapter) GetData(telegramID int64, key string) (interface{}, bool) {
	return a.sm.GetData(telegramID, key)
}

func (a *Adapter) SetData(telegramID int64, key string, value interface{}) {
	a.sm.SetData(telegramID, key, value)
}

func (a *Adapter) DeleteData(telegramID int64, key string) {
	a.sm.DeleteData(telegramID, key)
}

func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}

func (a *Adapter) GetAllData(telegramID int64) map[string]interface{} {
	return a.sm.GetAllData(telegramID)
}
