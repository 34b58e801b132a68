package schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"go.uber.org/zap"
)

func newBackendHandler(t *testing.T, backend http.HandlerFunc) *callbacktypes.Handler {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	api := portalapi.NewClient(server.URL, 5*time.Second, logger)
	sessions := service.NewSessionService(nil, nil, nil, logger)

	return &callbacktypes.Handler{
		Appointments: service.NewAppointmentService(api, sessions, logger),
		Availability: service.NewAvailabilityService(api, sessions, logger),
		Location:     time.UTC,
		Logger:       logger,
		Now:          func() time.Time { return testNow },
	}
}

func TestLoadView_AppointmentsFailureKeepsGridAndAvailability(t *testing.T) {
	t.Parallel()

	h := newBackendHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appointments":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		case "/availability":
			_, _ = w.Write([]byte(`{"weekly":[{"day_of_week":1,"start_time":"09:00","end_time":"12:00"}],"overrides":[]}`))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	session := &model.PortalSession{
		TelegramID:  42,
		Role:        model.RoleCounselor,
		AccessToken: "token-1",
		ExpiresAt:   testNow.Add(time.Hour),
	}

	view, err := LoadView(context.Background(), h, session, calendar.NewViewState(testNow))
	if err == nil {
		t.Fatal("expected the appointments failure to be reported")
	}
	if strings.Count(err.Error(), "list appointments") != 1 {
		t.Fatalf("error wrapped more than once: %v", err)
	}

	// March 2024 starts on a Friday: 5 blanks + 31 days
	if len(view.Weeks) != 6 {
		t.Fatalf("expected the grid to be built, got %d weeks", len(view.Weeks))
	}
	monday := view.Weeks[1][1]
	if monday.Date.Day() != 4 || !monday.IsToday {
		t.Fatalf("unexpected day view: %+v", monday)
	}
	if monday.Availability == nil || !monday.Availability.IsAvailable {
		t.Fatal("availability must still be shown when appointments fail")
	}
	if len(view.Appointments) != 0 || len(view.Month) != 0 {
		t.Fatalf("expected no appointments, got %+v", view.Appointments)
	}

	text, _ := BuildCalendarScreen(view, session.Role, time.UTC)
	if !strings.Contains(text, "March 2024") {
		t.Fatalf("screen not rendered: %q", text)
	}
}

func TestLoadView_StudentSkipsAvailability(t *testing.T) {
	t.Parallel()

	h := newBackendHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appointments" {
			t.Errorf("unexpected request %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":"a1","scheduled_date":"2024-03-04","start_time":"10:00","end_time":"11:00","status":"confirmed"}]`))
	})

	session := &model.PortalSession{TelegramID: 7, Role: model.RoleStudent, AccessToken: "token-2", ExpiresAt: testNow.Add(time.Hour)}

	view, err := LoadView(context.Background(), h, session, calendar.NewViewState(testNow))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Appointments) != 1 || view.Weeks[1][1].Availability != nil {
		t.Fatalf("unexpected view: %d appointments, availability %+v", len(view.Appointments), view.Weeks[1][1].Availability)
	}
}
