package common

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
)

func TestErrorMessage_BackendTextCapitalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "ascii", message: "slot is taken", want: "❌ Slot is taken"},
		{name: "accented first letter", message: "école fermée", want: "❌ École fermée"},
		{name: "cyrillic", message: "слот занят", want: "❌ Слот занят"},
		{name: "emoji first", message: "🔒 locked", want: "❌ 🔒 locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fmt.Errorf("update appointment: %w", &portalapi.APIError{StatusCode: 409, Message: tt.message})
			got := ErrorMessage(err)
			if got != tt.want || !utf8.ValidString(got) {
				t.Fatalf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCapitalize_InvalidInputUnchanged(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "\xffabc"} {
		if got := capitalize(s); got != s {
			t.Fatalf("capitalize(%q) = %q", s, got)
		}
	}
}
