package app

import (
	"io/fs"
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*60*60)
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before hour", time.Date(2024, 3, 4, 6, 59, 0, 0, loc), time.Date(2024, 3, 4, 7, 0, 0, 0, loc)},
		{"exactly at hour", time.Date(2024, 3, 4, 7, 0, 0, 0, loc), time.Date(2024, 3, 5, 7, 0, 0, 0, loc)},
		{"after hour", time.Date(2024, 3, 4, 18, 0, 0, 0, loc), time.Date(2024, 3, 5, 7, 0, 0, 0, loc)},
		{"month end", time.Date(2024, 2, 29, 8, 0, 0, 0, loc), time.Date(2024, 3, 1, 7, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NextRun(tt.now, 7); !got.Equal(tt.want) {
				t.Fatalf("NextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestCatchUpDue(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*60*60)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"start before hour waits", time.Date(2024, 3, 4, 6, 59, 0, 0, loc), false},
		{"start at hour catches up", time.Date(2024, 3, 4, 7, 0, 0, 0, loc), true},
		{"restart in the evening catches up", time.Date(2024, 3, 4, 21, 30, 0, 0, loc), true},
		{"start after midnight waits", time.Date(2024, 3, 5, 0, 5, 0, 0, loc), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CatchUpDue(tt.now, 7); got != tt.want {
				t.Fatalf("CatchUpDue(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestMigrationsFSFallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	fsys := MigrationsFS("does-not-exist")
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected embedded migrations")
	}
}
