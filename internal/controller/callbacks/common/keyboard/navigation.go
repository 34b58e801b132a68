package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// Callback data of the no-op button used for labels
const Noop = "noop"

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", "back_to_main")
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// LabelButton is a button that does nothing when pressed
func LabelButton(text string) models.InlineKeyboardButton {
	return Button(text, Noop)
}

func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Yes", yesCallback),
			Button("❌ No", noCallback),
		},
	}
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
