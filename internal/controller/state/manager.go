package state

import (
	"sync"
)

// Manager keeps per-user dialog state in memory
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState returns the current dialog step
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState moves the user to a dialog step. Leaving a dialog keeps the
// scratch data (an availability draft outlives its text prompts); the entry is
// dropped only when nothing is left in it.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if state == StateNone {
		if exists && len(userData.Data) > 0 {
			userData.State = StateNone
		} else {
			delete(sm.states, telegramID)
		}
		return
	}

	if !exists {
		sm.states[telegramID] = &UserData{
			State: state,
			Data:  make(map[string]interface{}),
		}
		return
	}
	userData.State = state
}

func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.states[telegramID].Data[key] = value
}

// DeleteData removes a single scratch value
func (sm *Manager) DeleteData(telegramID int64, key string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return
	}
	delete(userData.Data, key)
	if userData.State == StateNone && len(userData.Data) == 0 {
		delete(sm.states, telegramID)
	}
}

// ClearState drops the dialog step and all scratch data
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData returns a copy of the scratch data
func (sm *Manager) GetAllData(telegramID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		dataCopy := make(map[string]interface{}, len(userData.Data))
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}
