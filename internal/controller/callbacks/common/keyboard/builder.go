package keyboard

import "github.com/go-telegram/bot/models"

// Builder assembles inline keyboards row by row
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row appends a row; empty rows are skipped
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

func (b *Builder) AddRow(row []models.InlineKeyboardButton) *Builder {
	if len(row) > 0 {
		b.rows = append(b.rows, row)
	}
	return b
}

func (b *Builder) AddRows(rows [][]models.InlineKeyboardButton) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Grid lays buttons out in rows of perRow
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow <= 0 {
		perRow = 1
	}
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b
}

func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}
