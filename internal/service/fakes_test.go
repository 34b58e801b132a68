package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/portalapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC)

type fakeIDP struct {
	refreshErr  error
	refreshes   int
	signOuts    int
	nextToken   string
	credentials map[string]string
}

func (f *fakeIDP) SignInWithPassword(_ context.Context, email, password string) (*auth.Session, error) {
	if f.credentials[email] != password {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Session{AccessToken: "token-" + email, RefreshToken: "refresh-1", ExpiresIn: 3600}, nil
}

func (f *fakeIDP) Refresh(_ context.Context, refreshToken string) (*auth.Session, error) {
	f.refreshes++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &auth.Session{AccessToken: f.nextToken, RefreshToken: refreshToken + "-next", ExpiresIn: 3600}, nil
}

func (f *fakeIDP) SignOut(context.Context, string) error {
	f.signOuts++
	return nil
}

type fakeParser struct{}

func (fakeParser) Parse(token string) (*auth.Claims, error) {
	claims := &auth.Claims{Email: "counselor@uni.edu"}
	claims.Subject = "user-1"
	claims.UserMetadata.Role = "Counselor"
	claims.UserMetadata.FullName = "Dana Reyes"
	return claims, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]model.PortalSession
}

func newFakeSessionStore(sessions ...model.PortalSession) *fakeSessionStore {
	store := &fakeSessionStore{sessions: make(map[int64]model.PortalSession)}
	for _, s := range sessions {
		store.sessions[s.TelegramID] = s
	}
	return store
}

func (f *fakeSessionStore) Upsert(_ context.Context, s *model.PortalSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.TelegramID] = *s
	return nil
}

func (f *fakeSessionStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.PortalSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[telegramID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessionStore) UpdateTokens(ctx context.Context, s *model.PortalSession) error {
	return f.Upsert(ctx, s)
}

func (f *fakeSessionStore) Delete(_ context.Context, telegramID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, telegramID)
	return nil
}

func (f *fakeSessionStore) ListAll(context.Context) ([]*model.PortalSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.PortalSession
	for id := range f.sessions {
		s := f.sessions[id]
		out = append(out, &s)
	}
	return out, nil
}

// fakeBackend answers as the portal REST API; tokens listed in valid are accepted
type fakeBackend struct {
	valid        map[string]bool
	appointments []model.Appointment
	availability *model.Availability
	students     []model.Student
	notes        []model.Note
	calendar     model.CalendarSyncStatus
	returnURL    string
	updates      []portalapi.AppointmentAction
	calls        int
}

func (f *fakeBackend) check(token string) error {
	f.calls++
	if !f.valid[token] {
		return &portalapi.APIError{StatusCode: 401, Message: "jwt expired"}
	}
	return nil
}

func (f *fakeBackend) ListAppointments(_ context.Context, token string) ([]model.Appointment, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	return append([]model.Appointment(nil), f.appointments...), nil
}

func (f *fakeBackend) UpdateAppointment(_ context.Context, token, id string, action portalapi.AppointmentAction) (*model.Appointment, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	f.updates = append(f.updates, action)
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			a := f.appointments[i]
			a.Status = model.AppointmentStatusConfirmed
			return &a, nil
		}
	}
	return nil, &portalapi.APIError{StatusCode: 404}
}

func (f *fakeBackend) GetAvailability(_ context.Context, token string) (*model.Availability, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	if f.availability == nil {
		return &model.Availability{}, nil
	}
	return f.availability, nil
}

func (f *fakeBackend) PutAvailability(_ context.Context, token string, a *model.Availability) (*model.Availability, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	f.availability = a
	return a, nil
}

func (f *fakeBackend) CalendarStatus(_ context.Context, token string) (*model.CalendarSyncStatus, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	status := f.calendar
	return &status, nil
}

func (f *fakeBackend) AuthorizeCalendar(_ context.Context, token, returnURL string) (string, error) {
	if err := f.check(token); err != nil {
		return "", err
	}
	f.returnURL = returnURL
	return "https://accounts.example.com/o/oauth2/auth?client_id=x", nil
}

func (f *fakeBackend) DisconnectCalendar(_ context.Context, token string) error {
	if err := f.check(token); err != nil {
		return err
	}
	f.calendar = model.CalendarSyncStatus{}
	return nil
}

func (f *fakeBackend) SyncCalendar(_ context.Context, token string) error {
	return f.check(token)
}

func (f *fakeBackend) ListStudents(_ context.Context, token string) ([]model.Student, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	return append([]model.Student(nil), f.students...), nil
}

func (f *fakeBackend) UpdateStudentStatus(_ context.Context, token, studentID string, status model.StudentStatus) (*model.Student, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	for i := range f.students {
		if f.students[i].ID == studentID {
			f.students[i].Status = status
			s := f.students[i]
			return &s, nil
		}
	}
	return nil, &portalapi.APIError{StatusCode: 404}
}

func (f *fakeBackend) ListNotes(_ context.Context, token, studentID string) ([]model.Note, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	var out []model.Note
	for _, n := range f.notes {
		if n.StudentID == studentID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateNote(_ context.Context, token, studentID, content string) (*model.Note, error) {
	if err := f.check(token); err != nil {
		return nil, err
	}
	note := model.Note{ID: fmt.Sprintf("n%d", len(f.notes)+1), StudentID: studentID, Content: content, CreatedAt: testNow}
	f.notes = append(f.notes, note)
	return &note, nil
}

type fakeDigestStore struct {
	claims   map[string]uuid.UUID
	released int
}

func (f *fakeDigestStore) Claim(_ context.Context, runID uuid.UUID, telegramID int64, date string, _ int) (bool, error) {
	if f.claims == nil {
		f.claims = make(map[string]uuid.UUID)
	}
	key := fmt.Sprintf("%d/%s", telegramID, date)
	if _, ok := f.claims[key]; ok {
		return false, nil
	}
	f.claims[key] = runID
	return true, nil
}

func (f *fakeDigestStore) Release(_ context.Context, telegramID int64, date string) error {
	delete(f.claims, fmt.Sprintf("%d/%s", telegramID, date))
	f.released++
	return nil
}

type fakeNotifier struct {
	err      error
	messages map[int64][]string
}

func (f *fakeNotifier) Notify(_ context.Context, telegramID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.messages == nil {
		f.messages = make(map[int64][]string)
	}
	f.messages[telegramID] = append(f.messages[telegramID], text)
	return nil
}

type fakeViewStore struct {
	views map[int64]model.CalendarView
	err   error
}

func (f *fakeViewStore) Get(_ context.Context, telegramID int64) (*model.CalendarView, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.views[telegramID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeViewStore) Save(_ context.Context, view *model.CalendarView) error {
	if f.views == nil {
		f.views = make(map[int64]model.CalendarView)
	}
	f.views[view.TelegramID] = *view
	return nil
}

var errBoom = errors.New("boom")

func counselorSession(telegramID int64, token string) model.PortalSession {
	return model.PortalSession{
		TelegramID:   telegramID,
		UserID:       "user-1",
		Role:         model.RoleCounselor,
		AccessToken:  token,
		RefreshToken: "refresh-1",
		ExpiresAt:    testNow.Add(time.Hour),
	}
}

func newTestSessions(idp *fakeIDP, store *fakeSessionStore) *SessionService {
	s := NewSessionService(idp, fakeParser{}, store, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}
