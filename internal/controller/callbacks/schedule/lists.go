package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// List callback data
const (
	UpcomingPage = "up_page:"   // up_page:<n>
	HistoryPage  = "hist_page:" // hist_page:<n>
)

// ListPageSize is the number of appointments per list page
const ListPageSize = 6

// ListKind selects which appointment list a screen shows
type ListKind int

const (
	ListUpcoming ListKind = iota
	ListHistory
)

func (k ListKind) title() string {
	if k == ListHistory {
		return "🕘 <b>Appointment history</b>"
	}
	return "📋 <b>Upcoming appointments</b>"
}

func (k ListKind) prefix() string {
	if k == ListHistory {
		return HistoryPage
	}
	return UpcomingPage
}

// pageBounds clamps page and returns the slice bounds of it
func pageBounds(total, page, size int) (int, int, int, int) {
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	page = max(0, min(page, totalPages-1))
	start := min(page*size, total)
	end := min(start+size, total)
	return page, totalPages, start, end
}

// BuildListScreen renders one page of upcoming or past appointments grouped by date
func BuildListScreen(kind ListKind, appointments []model.Appointment, page int, viewer model.Role, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	page, totalPages, start, end := pageBounds(len(appointments), page, ListPageSize)
	items := appointments[start:end]

	text := kind.title() + "\n\n"
	if len(items) == 0 {
		if kind == ListHistory {
			text += "No past appointments yet."
		} else {
			text += "No upcoming appointments."
		}
	} else {
		text += formatting.DateGroups(items, viewer, loc)
		if totalPages > 1 {
			text += fmt.Sprintf("\n\n%s in total", formatting.Count(len(appointments), "appointment", "appointments"))
		}
	}

	kb := keyboard.NewBuilder()
	for i := range items {
		kb.Row(keyboard.Button(formatting.AppointmentButton(&items[i], true, loc), AppointmentView+items[i].ID))
	}
	kb.AddPagination(kind.prefix(), page, totalPages)
	kb.AddBackToMainButton()

	return text, kb.Build()
}

// LoadList fetches the appointments of a list kind
func LoadList(ctx context.Context, h *callbacktypes.Handler, session *model.PortalSession, kind ListKind) ([]model.Appointment, error) {
	if kind == ListHistory {
		return h.Appointments.History(ctx, session)
	}
	return h.Appointments.Upcoming(ctx, session)
}

// HandleUpcomingPage pages through upcoming appointments
func HandleUpcomingPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleListPage(ctx, b, callback, h, ListUpcoming)
}

// HandleHistoryPage pages through past appointments
func HandleHistoryPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleListPage(ctx, b, callback, h, ListHistory)
}

func handleListPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, kind ListKind) {
	page, err := common.ParseIntArg(callback.Data, kind.prefix())
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		appointments, err := LoadList(ctx, h, hc.Session, kind)
		if err != nil {
			common.HandleError(hc, err, "list appointments")
			return
		}
		text, kb := BuildListScreen(kind, appointments, page, hc.Session.Role, h.Today().Location())
		common.Render(hc, text, kb, "")
	})
}
