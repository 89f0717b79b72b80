package hours

import (
	"fmt"
	"strings"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// AllDayLabel is rendered instead of a time range for all-day entries.
const AllDayLabel = "All day"

// ScheduleRow is one display line: a day label plus its time range.
type ScheduleRow struct {
	Days  string `json:"days,omitempty"`
	Times string `json:"times,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// ScheduleGroup is the rendered schedule of one department.
type ScheduleGroup struct {
	Department string        `json:"department"`
	Rows       []ScheduleRow `json:"rows"`
}

// FormatSchedule renders canonical hour entries for read-only display:
// entries are grouped by department in first-appearance order, rows sharing a
// time window are merged, and day sets collapse to compact labels
// ("Mon-Fri", "Mon/Wed/Fri"). Notes-only entries keep their text as a
// free-form row.
func FormatSchedule(entries []entities.HourEntry) []ScheduleGroup {
	type key struct {
		open, close string
		allDay      bool
	}

	var order []string
	byDept := make(map[string][]entities.HourEntry)
	for _, e := range entries {
		dept := e.DepartmentOrDefault()
		if _, seen := byDept[dept]; !seen {
			order = append(order, dept)
		}
		byDept[dept] = append(byDept[dept], e)
	}

	groups := make([]ScheduleGroup, 0, len(order))
	for _, dept := range order {
		var rows []ScheduleRow
		merged := make(map[key][]entities.Weekday)
		var keyOrder []key
		var noteRows []ScheduleRow

		for _, e := range byDept[dept] {
			if e.IsNotesOnly() {
				noteRows = append(noteRows, ScheduleRow{Notes: e.Notes})
				continue
			}
			k := key{open: e.Open, close: e.Close, allDay: e.AllDay}
			if e.AllDay {
				k.open, k.close = "", ""
			}
			if _, seen := merged[k]; !seen {
				keyOrder = append(keyOrder, k)
			}
			merged[k] = append(merged[k], e.Days...)

			// Per-entry notes survive the merge as their own row.
			if e.Notes != "" {
				noteRows = append(noteRows, ScheduleRow{Notes: e.Notes})
			}
		}

		for _, k := range keyOrder {
			times := AllDayLabel
			if !k.allDay {
				times = ClockLabel(k.open) + "-" + ClockLabel(k.close)
			}
			rows = append(rows, ScheduleRow{
				Days:  DayRangeLabel(merged[k]),
				Times: times,
			})
		}
		rows = append(rows, noteRows...)

		groups = append(groups, ScheduleGroup{Department: dept, Rows: rows})
	}
	return groups
}

// displayOrder positions a weekday in the Monday-first order used for labels,
// so "Mon-Fri" and "Sat-Sun" both read as contiguous runs.
func displayOrder(d entities.Weekday) int {
	idx := entities.WeekdayIndex(d)
	if idx < 0 {
		return -1
	}
	return (idx + 6) % 7
}

// DayRangeLabel collapses a day set into a compact label. Maximal contiguous
// runs of three or more days render as a range ("Mon-Fri"); everything else
// is slash-joined ("Mon/Wed/Fri"). The weekend pair renders as "Sat-Sun".
func DayRangeLabel(days []entities.Weekday) string {
	days = canonicalDays(days)
	if len(days) == 0 {
		return ""
	}

	// Re-sort into Monday-first display order.
	sorted := make([]entities.Weekday, len(days))
	copy(sorted, days)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && displayOrder(sorted[j]) < displayOrder(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if len(sorted) == 7 {
		return "Mon-Sun"
	}
	if len(sorted) == 2 && sorted[0] == entities.Saturday && sorted[1] == entities.Sunday {
		return "Sat-Sun"
	}

	var parts []string
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && displayOrder(sorted[j+1]) == displayOrder(sorted[j])+1 {
			j++
		}
		if j-i >= 2 {
			parts = append(parts, string(sorted[i])+"-"+string(sorted[j]))
			i = j + 1
			continue
		}
		for ; i <= j; i++ {
			parts = append(parts, string(sorted[i]))
		}
	}
	return strings.Join(parts, "/")
}

// ClockLabel renders a canonical "HH:MM" time as a 12-hour label with the
// am/pm suffix attached and ":00" minutes omitted: "9am", "5:30pm", "12pm".
// Unparseable input is returned unchanged.
func ClockLabel(clock string) string {
	minutes, ok := parseClock(clock)
	if !ok {
		return clock
	}
	hour, min := minutes/60, minutes%60

	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	if min == 0 {
		return fmt.Sprintf("%d%s", hour12, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", hour12, min, suffix)
}
