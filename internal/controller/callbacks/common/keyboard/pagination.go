package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons returns ⬅️ n/N ➡️ for 0-based pages; nil when there is one page.
// prefix is the callback prefix, e.g. "up_page:".
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, LabelButton(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages)))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// MonthPagination is the ◀️ label ▶️ row of the calendar screen
func MonthPagination(prevData, label, nextData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", prevData),
		LabelButton(label),
		Button("▶️", nextData),
	}
}
