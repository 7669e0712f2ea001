package gantt

import (
	"fmt"
	"time"
)

// Unit is the header bucket size.
type Unit string

const (
	UnitMonth Unit = "month"
	UnitWeek  Unit = "week"
)

// ParseUnit defaults anything unrecognised to months.
func ParseUnit(s string) Unit {
	if Unit(s) == UnitWeek {
		return UnitWeek
	}
	return UnitMonth
}

// Toggle flips between month and week.
func (u Unit) Toggle() Unit {
	if u == UnitWeek {
		return UnitMonth
	}
	return UnitWeek
}

// HeaderBand is one calendar bucket of the timeline header. Start and End
// are the first and last day (midnight) of the bucket.
type HeaderBand struct {
	Label string
	Start time.Time
	End   time.Time
	Week  int // ISO week number, week unit only
}

// EndExclusive is midnight after the band's last day.
func (b HeaderBand) EndExclusive() time.Time {
	return b.End.AddDate(0, 0, 1)
}

var monthNames = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"ko": {"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
	"ja": {"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
}

// MonthLabel formats "short month, year" for the locale; unknown locales use English.
func MonthLabel(t time.Time, locale string) string {
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames["en"]
	}
	month := names[t.Month()-1]
	switch locale {
	case "ko":
		return fmt.Sprintf("%d년 %s", t.Year(), month)
	case "ja":
		return fmt.Sprintf("%d年%s", t.Year(), month)
	default:
		return fmt.Sprintf("%s %d", month, t.Year())
	}
}

// WeekLabel is "M/D-D" inside one month and "M/D~M/D" across a month boundary.
func WeekLabel(start, end time.Time) string {
	if start.Month() == end.Month() && start.Year() == end.Year() {
		return fmt.Sprintf("%d/%d-%d", int(start.Month()), start.Day(), end.Day())
	}
	return fmt.Sprintf("%d/%d~%d/%d", int(start.Month()), start.Day(), int(end.Month()), end.Day())
}

// GenerateHeaders returns the bands overlapping the closed range
// [start, end]; both ends are calendar days. An inverted range yields no
// bands.
func GenerateHeaders(unit Unit, start, end time.Time, locale string) []HeaderBand {
	start, end = midnight(start), midnight(end)
	if end.Before(start) {
		return nil
	}
	if unit == UnitWeek {
		return weekBands(start, end)
	}
	return monthBands(start, end, locale)
}

func monthBands(start, end time.Time, locale string) []HeaderBand {
	var bands []HeaderBand
	for m := firstOfMonth(start); !m.After(end); m = m.AddDate(0, 1, 0) {
		bands = append(bands, HeaderBand{
			Label: MonthLabel(m, locale),
			Start: m,
			End:   m.AddDate(0, 1, -1),
		})
	}
	return bands
}

func weekBands(start, end time.Time) []HeaderBand {
	var bands []HeaderBand
	for w := MondayOnOrBefore(start); !w.After(end); w = w.AddDate(0, 0, 7) {
		last := w.AddDate(0, 0, 6)
		_, week := w.ISOWeek()
		bands = append(bands, HeaderBand{
			Label: WeekLabel(w, last),
			Start: w,
			End:   last,
			Week:  week,
		})
	}
	return bands
}

// MondayOnOrBefore returns the Monday starting t's week; Sunday belongs to
// the week before.
func MondayOnOrBefore(t time.Time) time.Time {
	t = midnight(t)
	wd := int(t.Weekday())
	if wd == 0 {
		return t.AddDate(0, 0, -6)
	}
	return t.AddDate(0, 0, -(wd - 1))
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOf returns t's calendar date as midnight UTC, the zone task dates are
// stored in.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
