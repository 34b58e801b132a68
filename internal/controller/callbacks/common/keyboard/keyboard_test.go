package keyboard

import "testing"

func TestPaginationButtons(t *testing.T) {
	t.Parallel()

	if got := PaginationButtons("p:", 0, 1); got != nil {
		t.Fatalf("expected no buttons for a single page, got %v", got)
	}

	first := PaginationButtons("p:", 0, 3)
	if len(first) != 2 || first[1].CallbackData != "p:1" {
		t.Fatalf("unexpected first page buttons %+v", first)
	}

	middle := PaginationButtons("p:", 1, 3)
	if len(middle) != 3 || middle[0].CallbackData != "p:0" || middle[1].Text != "📄 2/3" || middle[2].CallbackData != "p:2" {
		t.Fatalf("unexpected middle page buttons %+v", middle)
	}

	last := PaginationButtons("p:", 2, 3)
	if len(last) != 2 || last[0].CallbackData != "p:1" {
		t.Fatalf("unexpected last page buttons %+v", last)
	}
}

func TestBuilderGrid(t *testing.T) {
	t.Parallel()

	markup := NewBuilder().
		Grid(3, Button("1", "a"), Button("2", "b"), Button("3", "c"), Button("4", "d")).
		Row().
		AddBackToMainButton().
		Build()

	rows := markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 3 || len(rows[1]) != 1 {
		t.Fatalf("unexpected grid layout %v", rows)
	}
	if rows[2][0].CallbackData != "back_to_main" {
		t.Fatalf("unexpected last row %v", rows[2])
	}
}
