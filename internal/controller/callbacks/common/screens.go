package common

import (
	"fmt"

	"github.com/Freeeeeet/counseling_portal/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/counseling_portal/internal/model"
	"github.com/go-telegram/bot/models"
)

// Callback data of the main menu entries
const (
	CallbackCalendar     = "cal_show"
	CallbackUpcoming     = "up_page:0"
	CallbackHistory      = "hist_page:0"
	CallbackAvailability = "av_show"
	CallbackStudents     = "st_list:name:0"
	CallbackSync         = "sync_show"
)

// BuildMainMenuScreen renders the role-aware main menu
func BuildMainMenuScreen(session *model.PortalSession) (string, *models.InlineKeyboardMarkup) {
	name := session.DisplayName
	if name == "" {
		name = session.Email
	}

	text := fmt.Sprintf("👋 <b>%s</b>\n\n", Escape(name))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Calendar", CallbackCalendar)).
		Row(
			keyboard.Button("📋 Upcoming", CallbackUpcoming),
			keyboard.Button("🕘 History", CallbackHistory),
		)

	if session.IsCounselor() {
		text += "Counselor account. Manage your sessions, availability and students."
		kb.Row(
			keyboard.Button("🗓 Availability", CallbackAvailability),
			keyboard.Button("👥 Students", CallbackStudents),
		).Row(keyboard.Button("🔄 Google Calendar", CallbackSync))
	} else {
		text += "Student account. Here are your counseling appointments."
	}

	return text, kb.Build()
}

// BuildLoggedOutScreen asks the user to link their portal account
func BuildLoggedOutScreen() (string, *models.InlineKeyboardMarkup) {
	text := "🔒 Your Telegram account is not linked to the counseling portal.\n\n" +
		"Use /login to sign in with your portal email and password."
	return text, nil
}
