package counselor

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Monday
var testToday = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

func callbackData(kb *models.InlineKeyboardMarkup) []string {
	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.CallbackData)
		}
	}
	return data
}

func has(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func testDraft() *service.AvailabilityDraft {
	return service.NewAvailabilityDraft(&model.Availability{
		Weekly: []model.WeeklySlot{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "15:00"},
		},
		Overrides: []model.DateOverride{
			{Date: "2024-03-11", IsUnavailable: true},
			{Date: "2024-03-09", Slots: []model.TimeSlot{{Start: "10:00", End: "11:00"}}},
		},
	})
}

func TestBuildEditorScreen(t *testing.T) {
	t.Parallel()

	text, kb := BuildEditorScreen(testDraft(), false, testToday)
	for _, want := range []string{
		"<b>Monday</b>: 09:00–12:00, 13:00–15:00",
		"<b>Tuesday</b>: not available",
		"2 date overrides",
		"Next open dates: Mon, Mar 4; Sat, Mar 9",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
	data := callbackData(kb)
	if has(data, AvailabilitySave) {
		t.Fatal("save is offered only with unsaved changes")
	}
	if !has(data, "av_day:0") || !has(data, "av_day:6") || !has(data, OverridesShow) {
		t.Fatalf("missing editor buttons: %v", data)
	}

	_, kb = BuildEditorScreen(testDraft(), true, testToday)
	if data := callbackData(kb); !has(data, AvailabilitySave) || !has(data, AvailabilityDiscard) {
		t.Fatalf("dirty editor must offer save and discard: %v", data)
	}
}

func TestBuildDayScreen(t *testing.T) {
	t.Parallel()

	draft := testDraft()
	_, kb := BuildDayScreen(draft, 1)
	data := callbackData(kb)
	for _, want := range []string{"av_slot_del:1:0", "av_slot_del:1:1", "av_slot_add:1", "av_toggle:1", AvailabilityShow} {
		if !has(data, want) {
			t.Fatalf("missing %q in %v", want, data)
		}
	}

	text, _ := BuildDayScreen(draft, 3)
	if !strings.Contains(text, "Not available") {
		t.Fatalf("unexpected empty day text %q", text)
	}
}

func TestBuildOverridesScreen(t *testing.T) {
	t.Parallel()

	text, kb := BuildOverridesScreen(testDraft(), time.UTC)
	first := strings.Index(text, "Sat, Mar 9: 10:00–11:00")
	second := strings.Index(text, "Mon, Mar 11: unavailable")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("overrides not listed in date order: %q", text)
	}
	data := callbackData(kb)
	if !has(data, "av_ovr_del:2024-03-09") || !has(data, OverrideAdd) {
		t.Fatalf("missing override buttons: %v", data)
	}
}

func TestBuildSyncScreen(t *testing.T) {
	t.Parallel()

	_, kb := BuildSyncScreen(&model.CalendarSyncStatus{}, testToday)
	if data := callbackData(kb); !has(data, SyncConnect) || has(data, SyncNow) {
		t.Fatalf("disconnected screen buttons: %v", data)
	}

	last := testToday.Add(-5 * time.Minute)
	text, kb := BuildSyncScreen(&model.CalendarSyncStatus{Connected: true, SyncEnabled: true, LastSyncAt: &last}, testToday)
	if !strings.Contains(text, "Last sync: 5 min ago") {
		t.Fatalf("unexpected status text %q", text)
	}
	if data := callbackData(kb); !has(data, SyncNow) || !has(data, SyncDisconnectAsk) || has(data, SyncConnect) {
		t.Fatalf("connected screen buttons: %v", data)
	}
}

func TestBuildStudentScreens(t *testing.T) {
	t.Parallel()

	students := []model.Student{
		{ID: "s1", Name: "Ana", Status: model.StudentStatusActive},
		{ID: "s2", Name: "Ben", Status: model.StudentStatusReferred},
	}
	page := service.Paginate(students, 0, StudentPageSize)
	page.Sort = service.SortByStatus

	_, kb := BuildStudentListScreen(&page)
	data := callbackData(kb)
	if !has(data, "st_view:s1") || !has(data, "st_list:name:0") {
		t.Fatalf("list buttons: %v", data)
	}

	text, kb := BuildStudentScreen(&students[0], ListCallback(service.SortByStatus, 0), time.UTC)
	if !strings.Contains(text, "No appointments yet") {
		t.Fatalf("unexpected student text %q", text)
	}
	data = callbackData(kb)
	if has(data, "st_status:active:s1") || !has(data, "st_status:closed:s1") || !has(data, "st_list:status:0") {
		t.Fatalf("student buttons: %v", data)
	}

	notes := make([]model.Note, notesShown+2)
	for i := range notes {
		notes[i] = model.Note{Content: "<note>", CreatedAt: testToday}
	}
	text, _ = BuildNotesScreen(&students[0], notes, time.UTC)
	if !strings.Contains(text, "2 notes more") || strings.Contains(text, "<note>") {
		t.Fatalf("unexpected notes text %q", text)
	}
}

func TestDraftDirtyFlag(t *testing.T) {
	t.Parallel()

	h := &callbacktypes.Handler{StateManager: state.NewAdapter(state.NewManager()), Logger: zap.NewNop()}

	if IsDirty(h, 7) {
		t.Fatal("fresh user must not be dirty")
	}
	MarkDirty(h, 7)
	if !IsDirty(h, 7) {
		t.Fatal("expected dirty after MarkDirty")
	}
	DropDraft(h, 7)
	if IsDirty(h, 7) {
		t.Fatal("expected clean after DropDraft")
	}
}
