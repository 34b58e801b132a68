package handlers

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"go.uber.org/zap"
)

func newTestHandlers() *Handlers {
	sm := state.NewManager()
	deps := &callbacktypes.Handler{StateManager: state.NewAdapter(sm), Logger: zap.NewNop()}
	return NewHandlers(deps, sm, zap.NewNop())
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	h := newTestHandlers()
	tests := []struct {
		email string
		ok    bool
	}{
		{"dana@uni.edu", true},
		{"", false},
		{"not-an-email", false},
		{"a@", false},
	}
	for _, tt := range tests {
		if err := h.ValidateEmail(tt.email); (err == nil) != tt.ok {
			t.Fatalf("ValidateEmail(%q) error = %v, want ok=%v", tt.email, err, tt.ok)
		}
	}
}

func TestParseOverride(t *testing.T) {
	t.Parallel()

	off, err := ParseOverride("2024-12-24", " OFF ")
	if err != nil || !off.IsUnavailable || len(off.Slots) != 0 {
		t.Fatalf("unexpected day-off override %+v, err %v", off, err)
	}

	o, err := ParseOverride("2024-12-24", "14:00-16:00, 9:00-12:00")
	if err != nil {
		t.Fatalf("ParseOverride() error = %v", err)
	}
	if o.IsUnavailable || len(o.Slots) != 2 || o.Slots[0].Start != "09:00" {
		t.Fatalf("unexpected override %+v", o)
	}

	if _, err := ParseOverride("2024-12-24", "09:00-12:00, 11:00-13:00"); !errors.Is(err, service.ErrInvalidSlot) {
		t.Fatalf("expected overlap error, got %v", err)
	}
}
