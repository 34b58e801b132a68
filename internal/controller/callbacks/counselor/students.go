package counselor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/calendar"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/controller/state"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/Freeeeeet/counseling_portal/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Student management callback data
const (
	StudentList    = "st_list:"     // st_list:<sort>:<page>
	StudentView    = "st_view:"     // st_view:<id>
	StudentStatus  = "st_status:"   // st_status:<status>:<id>
	StudentNotes   = "st_notes:"    // st_notes:<id>
	StudentNoteAdd = "st_note_add:" // st_note_add:<id>
)

const (
	StudentPageSize = 8
	notesShown      = 10
)

var sortLabels = []struct {
	sort  service.StudentSort
	label string
}{
	{service.SortByName, "🔤 Name"},
	{service.SortByStatus, "📊 Status"},
	{service.SortByLastAppointment, "🕘 Last seen"},
}

func parseSort(value string) service.StudentSort {
	for _, s := range sortLabels {
		if string(s.sort) == value {
			return s.sort
		}
	}
	return service.SortByName
}

// ListCallback is the callback data of a student list page
func ListCallback(by service.StudentSort, page int) string {
	return fmt.Sprintf("%s%s:%d", StudentList, by, page)
}

// BuildStudentListScreen renders one page of the counselor's students
func BuildStudentListScreen(page *service.StudentPage) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Students</b> · %d\n", page.Total)

	if page.Total == 0 {
		sb.WriteString("\nNo students yet.")
	}

	kb := keyboard.NewBuilder()
	for _, s := range page.Students {
		display := calendar.StudentStatusDisplay(s.Status)
		kb.Row(keyboard.Button(fmt.Sprintf("%s %s", display.Emoji, s.Name), StudentView+s.ID))
	}

	sorts := make([]models.InlineKeyboardButton, 0, len(sortLabels))
	for _, s := range sortLabels {
		label := s.label
		if s.sort == page.Sort {
			label = "• " + label
		}
		sorts = append(sorts, keyboard.Button(label, ListCallback(s.sort, 0)))
	}
	kb.Row(sorts...)
	kb.AddPagination(fmt.Sprintf("%s%s:", StudentList, page.Sort), page.Page, page.TotalPages)
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildStudentScreen renders a student with status actions
func BuildStudentScreen(s *model.Student, backData string, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>%s</b>\n\n", common.Escape(s.Name))
	if s.IDNumber != "" {
		fmt.Fprintf(&sb, "🪪 %s\n", common.Escape(s.IDNumber))
	}
	if s.Email != "" {
		fmt.Fprintf(&sb, "✉️ %s\n", common.Escape(s.Email))
	}
	if s.Program != "" {
		program := s.Program
		if s.YearLevel > 0 {
			program += fmt.Sprintf(", year %d", s.YearLevel)
		}
		fmt.Fprintf(&sb, "🎓 %s\n", common.Escape(program))
	}
	fmt.Fprintf(&sb, "📊 Status: %s\n", formatting.StudentStatus(s.Status))
	if s.LastAppointment != nil {
		fmt.Fprintf(&sb, "🕘 Last appointment: %s\n", formatting.FormatLongDate(s.LastAppointment.In(loc)))
	} else {
		sb.WriteString("🕘 No appointments yet\n")
	}

	statuses := make([]models.InlineKeyboardButton, 0, len(model.StudentStatuses))
	for _, status := range model.StudentStatuses {
		if status == s.Status {
			continue
		}
		display := calendar.StudentStatusDisplay(status)
		statuses = append(statuses, keyboard.Button(display.Emoji+" "+display.Label, fmt.Sprintf("%s%s:%s", StudentStatus, status, s.ID)))
	}

	kb := keyboard.NewBuilder().
		Grid(2, statuses...).
		Row(keyboard.Button("📝 Notes", StudentNotes+s.ID)).
		AddBackButton(backData).
		Build()

	return strings.TrimRight(sb.String(), "\n"), kb
}

// BuildNotesScreen renders the latest notes of a student
func BuildNotesScreen(s *model.Student, notes []model.Note, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 <b>Notes on %s</b>\n", common.Escape(s.Name))

	if len(notes) == 0 {
		sb.WriteString("\nNo notes yet.")
	}
	for i, n := range notes {
		if i == notesShown {
			fmt.Fprintf(&sb, "\n… %s more in the portal", formatting.Count(len(notes)-i, "note", "notes"))
			break
		}
		fmt.Fprintf(&sb, "\n<b>%s</b>\n%s\n", formatting.FormatDateTime(n.CreatedAt.In(loc)), common.Escape(n.Content))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Add note", StudentNoteAdd+s.ID)).
		AddBackButton(StudentView+s.ID).
		Build()

	return strings.TrimRight(sb.String(), "\n"), kb
}

// NotePrompt asks for the text of a new note
func NotePrompt(s *model.Student) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("📝 <b>New note on %s</b>\n\nSend the note as a message.", common.Escape(s.Name))
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(StudentNotes + s.ID)).Build()
	return text, kb
}

// listBack is the callback of the list page the counselor came from
func listBack(hc *common.HandlerContext) string {
	by := service.SortByName
	page := 0
	if v, ok := hc.GetData(state.KeyStudentSort); ok {
		if s, ok := v.(service.StudentSort); ok {
			by = s
		}
	}
	if v, ok := hc.GetData(state.KeyStudentPage); ok {
		if p, ok := v.(int); ok {
			page = p
		}
	}
	return ListCallback(by, page)
}

func HandleStudentList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, StudentList, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	by := parseSort(args[0])
	var pageNum int
	if _, err := fmt.Sscanf(args[1], "%d", &pageNum); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := h.Students.Page(ctx, hc.Session, by, pageNum, StudentPageSize)
		if err != nil {
			common.HandleError(hc, err, "list students")
			return
		}
		hc.SetData(state.KeyStudentSort, page.Sort)
		hc.SetData(state.KeyStudentPage, page.Page)

		text, kb := BuildStudentListScreen(page)
		common.Render(hc, text, kb, "")
	})
}

func HandleStudentView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, StudentView, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		student, err := h.Students.Get(ctx, hc.Session, args[0])
		if err != nil {
			common.HandleError(hc, err, "get student")
			return
		}
		text, kb := BuildStudentScreen(student, listBack(hc), h.Today().Location())
		common.Render(hc, text, kb, "")
	})
}

func HandleStudentStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, StudentStatus, 2)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	status := model.StudentStatus(args[0])

	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		student, err := h.Students.UpdateStatus(ctx, hc.Session, args[1], status)
		if err != nil {
			common.HandleError(hc, err, "update student status")
			return
		}
		text, kb := BuildStudentScreen(student, listBack(hc), h.Today().Location())
		common.Render(hc, text, kb, "Status: "+calendar.StudentStatusDisplay(student.Status).Label)
	})
}

func HandleStudentNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, StudentNotes, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		endPrompt(h, hc.TelegramID)
		hc.DeleteData(state.KeyNoteStudentID)

		text, kb, err := LoadNotesScreen(ctx, h, hc.Session, args[0])
		if err != nil {
			common.HandleError(hc, err, "list notes")
			return
		}
		common.Render(hc, text, kb, "")
	})
}

// LoadNotesScreen fetches a student and their notes and renders them
func LoadNotesScreen(ctx context.Context, h *callbacktypes.Handler, session *model.PortalSession, studentID string) (string, *models.InlineKeyboardMarkup, error) {
	student, err := h.Students.Get(ctx, session, studentID)
	if err != nil {
		return "", nil, err
	}
	notes, err := h.Students.Notes(ctx, session, studentID)
	if err != nil {
		return "", nil, err
	}
	text, kb := BuildNotesScreen(student, notes, h.Today().Location())
	return text, kb, nil
}

// HandleStudentNoteAdd starts the note text dialog
func HandleStudentNoteAdd(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgs(callback.Data, StudentNoteAdd, 1)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithCounselor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		student, err := h.Students.Get(ctx, hc.Session, args[0])
		if err != nil {
			common.HandleError(hc, err, "get student")
			return
		}
		hc.SetData(state.KeyNoteStudentID, student.ID)
		hc.SetState(callbacktypes.UserState(state.StateAddNote))

		text, kb := NotePrompt(student)
		common.Render(hc, text, kb, "")
	})
}
