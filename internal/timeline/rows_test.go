package timeline

import (
	"fmt"
	"testing"

	"github.com/heartmarshall/timeline-backend/internal/domain"
)

// dayEvent places an event at day offsets from 2000-01-01 for compact interval tests.
func dayEvent(tag string, from, to int) domain.Event {
	base := d("2000-01-01").Time()
	start := domain.DateOf(base.AddDate(0, 0, from))
	end := domain.DateOf(base.AddDate(0, 0, to))
	return domain.Event{Tag: tag, Category: "G", Country: "C", DateStart: start, DateEnd: &end}
}

func TestAssignRows_GreedyFirstFit(t *testing.T) {
	t.Parallel()

	a := AssignRows([]domain.Event{
		dayEvent("e0_5", 0, 5),
		dayEvent("e5_10", 5, 10),
		dayEvent("e2_3", 2, 3),
	})

	if len(a.Order) != 2 {
		t.Fatalf("rows: got %d (%v), want 2", len(a.Order), a.Order)
	}
	want := map[string]string{
		"e0_5":  "G|C_0",
		"e5_10": "G|C_0",
		"e2_3":  "G|C_1",
	}
	for tag, row := range want {
		got, ok := a.RowOf(tag)
		if !ok || got != row {
			t.Errorf("RowOf(%s): got %q, want %q", tag, got, row)
		}
	}
}

func TestAssignRows_GroupOrderIsLexicographic(t *testing.T) {
	t.Parallel()

	a := AssignRows([]domain.Event{
		ev("z", "Science", "USA", "1969-07-20", ""),
		ev("y", "Politics", "Germany", "1989-11-09", ""),
		ev("x", "Politics", "Global", "1914-07-28", "1918-11-11"),
		ev("w", "Culture", "USA", "1969-08-15", "1969-08-18"),
	})

	wantOrder := []string{"Culture|USA_0", "Politics|Germany_0", "Politics|Global_0", "Science|USA_0"}
	if fmt.Sprint(a.Order) != fmt.Sprint(wantOrder) {
		t.Fatalf("Order: got %v, want %v", a.Order, wantOrder)
	}
	if a.Labels[1] != "Politics\nGermany" {
		t.Errorf("Labels[1]: got %q, want %q", a.Labels[1], "Politics\nGermany")
	}
	if len(a.Labels) != len(a.Order) {
		t.Errorf("Labels length %d != Order length %d", len(a.Labels), len(a.Order))
	}
	if a.Placements[0].Event.Tag != "w" {
		t.Errorf("first placement: got %q, want w", a.Placements[0].Event.Tag)
	}
}

func TestAssignRows_InstantEventsShareRowWhenNotSameDay(t *testing.T) {
	t.Parallel()

	a := AssignRows([]domain.Event{
		ev("a", "Science", "USA", "1969-07-20", ""),
		ev("b", "Science", "USA", "1969-07-20", ""),
		ev("c", "Science", "USA", "1969-07-21", ""),
	})

	// "a" ends on its start day, so "b" starting that day fits after it (end <= start).
	for _, tag := range []string{"a", "b", "c"} {
		if row, _ := a.RowOf(tag); row != "Science|USA_0" {
			t.Errorf("RowOf(%s): got %q, want Science|USA_0", tag, row)
		}
	}
}

func TestAssignRows_StableForEqualStarts(t *testing.T) {
	t.Parallel()

	a := AssignRows([]domain.Event{
		dayEvent("first", 0, 4),
		dayEvent("second", 0, 2),
	})

	if row, _ := a.RowOf("first"); row != "G|C_0" {
		t.Errorf("first: got %q, want G|C_0", row)
	}
	if row, _ := a.RowOf("second"); row != "G|C_1" {
		t.Errorf("second: got %q, want G|C_1", row)
	}
}

func TestAssignRows_NewRowsAppearInCreationOrder(t *testing.T) {
	t.Parallel()

	a := AssignRows([]domain.Event{
		dayEvent("a", 0, 10),
		dayEvent("b", 1, 9),
		dayEvent("c", 2, 8),
		dayEvent("d", 11, 12),
	})

	want := []string{"G|C_0", "G|C_1", "G|C_2"}
	if fmt.Sprint(a.Order) != fmt.Sprint(want) {
		t.Fatalf("Order: got %v, want %v", a.Order, want)
	}
	if row, _ := a.RowOf("d"); row != "G|C_0" {
		t.Errorf("d: got %q, want G|C_0", row)
	}
}

func TestAssignRows_Empty(t *testing.T) {
	t.Parallel()

	a := AssignRows(nil)
	if a.Len() != 0 || len(a.Order) != 0 {
		t.Fatalf("expected empty assignment, got %+v", a)
	}
	if _, ok := a.RowOf("missing"); ok {
		t.Error("RowOf on empty assignment should report false")
	}
}

func TestAssignRows_WorldWarsShareSlotZero(t *testing.T) {
	t.Parallel()

	a := AssignRows(FilterEvents(worldWars(), Criteria{Categories: Only("Politics")}))

	if len(a.Order) != 1 || a.Order[0] != "Politics|Global_0" {
		t.Fatalf("Order: got %v, want [Politics|Global_0]", a.Order)
	}
	for _, tag := range []string{"Politics_War_WWI_1914", "Politics_War_WWII_1939"} {
		if row, _ := a.RowOf(tag); row != "Politics|Global_0" {
			t.Errorf("RowOf(%s): got %q", tag, row)
		}
	}
}
