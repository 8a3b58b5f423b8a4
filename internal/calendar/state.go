package calendar

// Range is the persisted check-in/check-out pair. Either side may be zero.
type Range struct {
	CheckIn  Date `json:"checkIn"`
	CheckOut Date `json:"checkOut"`
}

// Complete reports whether both dates are set.
func (r Range) Complete() bool {
	return !r.CheckIn.IsZero() && !r.CheckOut.IsZero()
}

// Nights is the stay length of a complete range, zero otherwise.
func (r Range) Nights() int {
	if !r.Complete() {
		return 0
	}
	return r.CheckOut.DaysSince(r.CheckIn)
}

// Contains reports whether d lies within a complete range, ends included.
func (r Range) Contains(d Date) bool {
	if !r.Complete() {
		return false
	}
	return !d.Before(r.CheckIn) && !d.After(r.CheckOut)
}

// State is one of Empty, PartialRange or FullRange.
type State interface {
	Range() Range
	click(d Date) State
}

// Empty has no dates selected.
type Empty struct{}

// PartialRange has a check-in and is waiting for a check-out.
type PartialRange struct {
	CheckIn Date
}

// FullRange has both ends selected.
type FullRange struct {
	CheckIn  Date
	CheckOut Date
}

func (Empty) Range() Range { return Range{} }

func (Empty) click(d Date) State { return PartialRange{CheckIn: d} }

func (s PartialRange) Range() Range { return Range{CheckIn: s.CheckIn} }

func (s PartialRange) click(d Date) State {
	if d.Before(s.CheckIn) {
		return PartialRange{CheckIn: d}
	}
	return FullRange{CheckIn: s.CheckIn, CheckOut: d}
}

func (s FullRange) Range() Range { return Range{CheckIn: s.CheckIn, CheckOut: s.CheckOut} }

// A click on a full range always starts a new selection, wherever it lands.
func (s FullRange) click(d Date) State { return PartialRange{CheckIn: d} }

// StateOf classifies a stored range. Inconsistent ranges (check-out without
// check-in, or check-out before check-in) degrade to the nearest valid state.
func StateOf(r Range) State {
	switch {
	case r.CheckIn.IsZero():
		return Empty{}
	case r.CheckOut.IsZero(), r.CheckOut.Before(r.CheckIn):
		return PartialRange{CheckIn: r.CheckIn}
	default:
		return FullRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
	}
}

// Normalize returns the consistent form of r.
func Normalize(r Range) Range {
	return StateOf(r).Range()
}

// Click applies one date click to r. Days before today are not selectable:
// the range is returned unchanged and ok is false.
func Click(r Range, d Date, today Date) (next Range, ok bool) {
	if d.IsZero() || d.Before(today) {
		return r, false
	}
	return StateOf(r).click(d).Range(), true
}
