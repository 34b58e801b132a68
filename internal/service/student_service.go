package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/counseling_portal/internal/model"
	"go.uber.org/zap"
)

// StudentSort is a client-side ordering of the student list
type StudentSort string

const (
	SortByName            StudentSort = "name"
	SortByStatus          StudentSort = "status"
	SortByLastAppointment StudentSort = "last"
)

// StudentPage is one page of the sorted student list
type StudentPage struct {
	Students   []model.Student
	Page       int
	TotalPages int
	Total      int
	Sort       StudentSort
}

var statusRank = map[model.StudentStatus]int{
	model.StudentStatusActive:     0,
	model.StudentStatusMonitoring: 1,
	model.StudentStatusReferred:   2,
	model.StudentStatusClosed:     3,
}

// SortStudents returns a sorted copy. Status order is active, monitoring,
// referred, closed, unknown; last appointment is most recent first with
// never-seen students at the end. Name breaks ties.
func SortStudents(students []model.Student, by StudentSort) []model.Student {
	sorted := make([]model.Student, len(students))
	copy(sorted, students)

	byName := func(a, b model.Student) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch by {
		case SortByStatus:
			ra, oka := statusRank[a.Status]
			rb, okb := statusRank[b.Status]
			if !oka {
				ra = len(statusRank)
			}
			if !okb {
				rb = len(statusRank)
			}
			if ra != rb {
				return ra < rb
			}
		case SortByLastAppointment:
			switch {
			case a.LastAppointment == nil && b.LastAppointment != nil:
				return false
			case a.LastAppointment != nil && b.LastAppointment == nil:
				return true
			case a.LastAppointment != nil && b.LastAppointment != nil && !a.LastAppointment.Equal(*b.LastAppointment):
				return a.LastAppointment.After(*b.LastAppointment)
			}
		}
		return byName(a, b)
	})

	return sorted
}

// Paginate clamps page into range and slices out that page (pages start at 0)
func Paginate(students []model.Student, page, pageSize int) StudentPage {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := len(students)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(0, min(page, totalPages-1))

	start := min(page*pageSize, total)
	end := min(start+pageSize, total)

	return StudentPage{
		Students:   students[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

type StudentService struct {
	api      StudentAPI
	sessions *SessionService
	logger   *zap.Logger
}

func NewStudentService(api StudentAPI, sessions *SessionService, logger *zap.Logger) *StudentService {
	return &StudentService{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *StudentService) list(ctx context.Context, session *model.PortalSession) ([]model.Student, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}

	var students []model.Student
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		students, err = s.api.ListStudents(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Page returns a sorted page of the counselor's students
func (s *StudentService) Page(ctx context.Context, session *model.PortalSession, by StudentSort, page, pageSize int) (*StudentPage, error) {
	students, err := s.list(ctx, session)
	if err != nil {
		return nil, err
	}

	result := Paginate(SortStudents(students, by), page, pageSize)
	result.Sort = by
	return &result, nil
}

func (s *StudentService) Get(ctx context.Context, session *model.PortalSession, studentID string) (*model.Student, error) {
	students, err := s.list(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == studentID {
			return &students[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *StudentService) UpdateStatus(ctx context.Context, session *model.PortalSession, studentID string, status model.StudentStatus) (*model.Student, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}
	if _, ok := statusRank[status]; !ok {
		return nil, fmt.Errorf("unknown student status %q", status)
	}

	var student *model.Student
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		student, err = s.api.UpdateStudentStatus(ctx, token, studentID, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student status updated",
		zap.Int64("telegram_id", session.TelegramID),
		zap.String("student_id", studentID),
		zap.String("status", string(status)),
	)
	return student, nil
}

// Notes returns the notes of a student, newest first
func (s *StudentService) Notes(ctx context.Context, session *model.PortalSession, studentID string) ([]model.Note, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}

	var notes []model.Note
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		notes, err = s.api.ListNotes(ctx, token, studentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *StudentService) AddNote(ctx context.Context, session *model.PortalSession, studentID, content string) (*model.Note, error) {
	if !session.IsCounselor() {
		return nil, ErrNotCounselor
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}

	var note *model.Note
	err := s.sessions.Call(ctx, session, func(token string) error {
		var err error
		note, err = s.api.CreateNote(ctx, token, studentID, content)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}
