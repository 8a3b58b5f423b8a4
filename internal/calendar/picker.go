package calendar

import "time"

// Picker is the month view of a range selection.
type Picker struct {
	selection Range
	visible   Month
	today     Date
}

// NewPicker opens on the check-in month when one is selected, otherwise on
// today's month.
func NewPicker(selection Range, today Date) *Picker {
	selection = Normalize(selection)
	visible := MonthOf(today)
	if !selection.CheckIn.IsZero() {
		visible = MonthOf(selection.CheckIn)
	}
	return &Picker{selection: selection, visible: visible, today: today}
}

func (p *Picker) Selection() Range { return p.selection }

func (p *Picker) Visible() Month { return p.visible }

// Show jumps to an arbitrary month.
func (p *Picker) Show(m Month) { p.visible = m }

func (p *Picker) Next() { p.visible = p.visible.Next() }

func (p *Picker) Prev() { p.visible = p.visible.Prev() }

// Click selects d; see Click for the transition rules.
func (p *Picker) Click(d Date) bool {
	next, ok := Click(p.selection, d, p.today)
	if ok {
		p.selection = next
	}
	return ok
}

// Day is one rendered cell of the grid.
type Day struct {
	Date     Date `json:"date"`
	Disabled bool `json:"disabled"`
	Today    bool `json:"today"`
	CheckIn  bool `json:"checkIn"`
	CheckOut bool `json:"checkOut"`
	InRange  bool `json:"inRange"`
}

// Grid is a Sunday-first month page. Leading counts the blank cells before
// the first of the month.
type Grid struct {
	Month   string `json:"month"`
	Leading int    `json:"leading"`
	Days    []Day  `json:"days"`
}

// Grid renders the visible month.
func (p *Picker) Grid() Grid {
	first := p.visible.First()
	grid := Grid{
		Month:   p.visible.String(),
		Leading: int(first.Weekday() - time.Sunday),
		Days:    make([]Day, 0, p.visible.Days()),
	}
	for i := 0; i < p.visible.Days(); i++ {
		d := first.AddDays(i)
		grid.Days = append(grid.Days, Day{
			Date:     d,
			Disabled: d.Before(p.today),
			Today:    d.Equal(p.today),
			CheckIn:  !p.selection.CheckIn.IsZero() && d.Equal(p.selection.CheckIn),
			CheckOut: !p.selection.CheckOut.IsZero() && d.Equal(p.selection.CheckOut),
			InRange:  p.selection.Contains(d),
		})
	}
	return grid
}
