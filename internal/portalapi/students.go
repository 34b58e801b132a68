package portalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// ListStudents returns the counselor's students
func (c *Client) ListStudents(ctx context.Context, token string) ([]model.Student, error) {
	var students []model.Student
	if err := c.do(ctx, token, http.MethodGet, "/students", nil, &students); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (c *Client) UpdateStudentStatus(ctx context.Context, token, studentID string, status model.StudentStatus) (*model.Student, error) {
	request := struct {
		Status model.StudentStatus `json:"status"`
	}{Status: status}

	var student model.Student
	if err := c.do(ctx, token, http.MethodPatch, "/students/"+escape(studentID)+"/status", request, &student); err != nil {
		return nil, fmt.Errorf("update student status: %w", err)
	}
	return &student, nil
}

func (c *Client) ListNotes(ctx context.Context, token, studentID string) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, token, http.MethodGet, "/students/"+escape(studentID)+"/notes", nil, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, token, studentID, content string) (*model.Note, error) {
	request := struct {
		Content string `json:"content"`
	}{Content: content}

	var note model.Note
	if err := c.do(ctx, token, http.MethodPost, "/students/"+escape(studentID)+"/notes", request, &note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}
