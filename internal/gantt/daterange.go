package gantt

import "time"

// Range is the half-open time span [Start, End) mapped onto the chart width.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Length() time.Duration { return r.End.Sub(r.Start) }

// Valid reports whether the range has positive length.
func (r Range) Valid() bool { return r.Length() > 0 }

// X maps t to a pixel offset: ((t - start) / length) * width.
func (r Range) X(t time.Time, width float64) float64 {
	if !r.Valid() {
		return 0
	}
	return float64(t.Sub(r.Start)) / float64(r.Length()) * width
}

// Time is the inverse of X.
func (r Range) Time(x, width float64) time.Time {
	if !r.Valid() || width <= 0 {
		return r.Start
	}
	return r.Start.Add(time.Duration(x / width * float64(r.Length())))
}

// Contains reports whether t lies in [Start, End].
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days is the whole number of days spanned.
func (r Range) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.Length().Hours() / 24)
}

// Timeline is the range plus the header bands that tile it.
type Timeline struct {
	Unit  Unit
	Range Range
	Bands []HeaderBand
}

// BuildTimeline spans the bands covering every dated row. Without dated
// rows it returns a zero (invalid) timeline.
func BuildTimeline(rows []Row, unit Unit, locale string) Timeline {
	var min, max time.Time
	for _, r := range rows {
		if r.Node == nil || !r.Node.HasDates() {
			continue
		}
		if min.IsZero() || r.Node.Start.Before(min) {
			min = r.Node.Start
		}
		if r.Node.End.After(max) {
			max = r.Node.End
		}
	}
	tl := Timeline{Unit: unit}
	if min.IsZero() {
		return tl
	}
	bands := GenerateHeaders(unit, min, max, locale)
	if len(bands) == 0 {
		return tl
	}
	tl.Bands = bands
	tl.Range = Range{Start: bands[0].Start, End: bands[len(bands)-1].EndExclusive()}
	return tl
}
