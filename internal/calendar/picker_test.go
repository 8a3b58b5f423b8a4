package calendar

import (
	"testing"
	"time"
)

func TestPickerOpensOnCheckInMonth(t *testing.T) {
	p := NewPicker(Range{CheckIn: MustParseDate("2026-06-03")}, today)
	if got := p.Visible(); got != (Month{Year: 2026, Month: time.June}) {
		t.Fatalf("expected June 2026, got %v", got)
	}
	p = NewPicker(Range{}, today)
	if got := p.Visible().String(); got != "2026-03" {
		t.Fatalf("expected today's month, got %s", got)
	}
}

func TestPickerNavigationIsUnbounded(t *testing.T) {
	p := NewPicker(Range{}, today)
	for i := 0; i < 30; i++ {
		p.Prev()
	}
	if got := p.Visible().String(); got != "2023-09" {
		t.Fatalf("expected 2023-09 after 30 months back, got %s", got)
	}
	for i := 0; i < 60; i++ {
		p.Next()
	}
	if got := p.Visible().String(); got != "2028-09" {
		t.Fatalf("expected 2028-09, got %s", got)
	}
}

func TestPickerGrid(t *testing.T) {
	p := NewPicker(Range{}, MustParseDate("2026-03-04"))
	if !p.Click(MustParseDate("2026-03-10")) || !p.Click(MustParseDate("2026-03-12")) {
		t.Fatal("expected clicks to be accepted")
	}
	if p.Click(MustParseDate("2026-03-02")) {
		t.Fatal("expected past click to be ignored")
	}

	grid := p.Grid()
	if grid.Month != "2026-03" {
		t.Fatalf("unexpected month %s", grid.Month)
	}
	// 1 March 2026 is a Sunday.
	if grid.Leading != 0 {
		t.Fatalf("expected no leading blanks, got %d", grid.Leading)
	}
	if len(grid.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(grid.Days))
	}
	if !grid.Days[2].Disabled || grid.Days[3].Disabled {
		t.Fatal("expected days before the 4th disabled")
	}
	if !grid.Days[3].Today {
		t.Fatal("expected the 4th flagged as today")
	}
	if !grid.Days[9].CheckIn || !grid.Days[11].CheckOut {
		t.Fatal("expected range ends flagged")
	}
	for i, want := range map[int]bool{8: false, 9: true, 10: true, 11: true, 12: false} {
		if grid.Days[i].InRange != want {
			t.Fatalf("day %d in range = %v, want %v", i+1, grid.Days[i].InRange, want)
		}
	}

	p.Next()
	if grid := p.Grid(); grid.Month != "2026-04" || grid.Leading != 3 || len(grid.Days) != 30 {
		t.Fatalf("unexpected April grid: %s leading=%d days=%d", grid.Month, grid.Leading, len(grid.Days))
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-12")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Next().String() != "2027-01" || m.Prev().String() != "2026-11" {
		t.Fatalf("unexpected neighbours of %s", m)
	}
	if _, err := ParseMonth("December"); err == nil {
		t.Fatal("expected parse error")
	}
}
