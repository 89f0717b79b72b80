package hours

import "time"

// Holiday is one recognized US holiday occurrence.
type Holiday struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Clinic hour data is not holiday-adjusted, so the evaluator never changes
// its open/closed answer on a holiday; callers surface an advisory instead.

// holidaysFor computes the recognized holidays for a year.
func holidaysFor(year int) []Holiday {
	return []Holiday{
		{Name: "New Year's Day", Date: date(year, time.January, 1)},
		{Name: "Martin Luther King Jr. Day", Date: nthWeekday(year, time.January, time.Monday, 3)},
		{Name: "Presidents' Day", Date: nthWeekday(year, time.February, time.Monday, 3)},
		{Name: "Memorial Day", Date: lastWeekday(year, time.May, time.Monday)},
		{Name: "Juneteenth", Date: date(year, time.June, 19)},
		{Name: "Independence Day", Date: date(year, time.July, 4)},
		{Name: "Labor Day", Date: nthWeekday(year, time.September, time.Monday, 1)},
		{Name: "Indigenous Peoples' Day", Date: nthWeekday(year, time.October, time.Monday, 2)},
		{Name: "Veterans Day", Date: date(year, time.November, 11)},
		{Name: "Thanksgiving", Date: nthWeekday(year, time.November, time.Thursday, 4)},
		{Name: "Christmas Day", Date: date(year, time.December, 25)},
	}
}

// IsHoliday reports whether the given date falls on a recognized US holiday,
// returning its name when it does.
func IsHoliday(day time.Time) (string, bool) {
	for _, h := range holidaysFor(day.Year()) {
		if sameDate(h.Date, day) {
			return h.Name, true
		}
	}
	return "", false
}

// UpcomingHoliday returns the first holiday falling on or within withinDays
// after now, or nil. The directory uses it for the "hours may differ" notice.
func UpcomingHoliday(now time.Time, withinDays int) *Holiday {
	today := date(now.Year(), now.Month(), now.Day())
	limit := today.AddDate(0, 0, withinDays)

	candidates := append(holidaysFor(now.Year()), holidaysFor(now.Year()+1)...)
	for _, h := range candidates {
		if !h.Date.Before(today) && !h.Date.After(limit) {
			holiday := h
			return &holiday
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// nthWeekday returns the nth occurrence of a weekday in a month (1-based).
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the final occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}
