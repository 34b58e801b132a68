package model

import "time"

// CalendarSyncStatus describes the Google Calendar link of a counselor
type CalendarSyncStatus struct {
	Connected   bool       `json:"connected"`
	SyncEnabled bool       `json:"sync_enabled"`
	LastSyncAt  *time.Time `json:"last_sync_at,omitempty"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}
