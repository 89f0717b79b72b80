package hours

import (
	"time"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// window is an hour entry reduced to minute arithmetic. An all-day window has
// open 0 and no close.
type window struct {
	entry    entities.HourEntry
	openMin  int
	closeMin int
	allDay   bool
}

func (w window) overnight() bool {
	return !w.allDay && w.closeMin < w.openMin
}

// usableWindows drops notes-only entries and entries whose open/close cannot
// be parsed. Malformed entries never abort evaluation of the rest.
func usableWindows(entries []entities.HourEntry) []window {
	var out []window
	for _, e := range entries {
		if e.IsNotesOnly() {
			continue
		}
		if e.AllDay {
			out = append(out, window{entry: e, allDay: true})
			continue
		}
		open, okOpen := parseClock(e.Open)
		close, okClose := parseClock(e.Close)
		if !okOpen || !okClose {
			continue
		}
		out = append(out, window{entry: e, openMin: open, closeMin: close})
	}
	return out
}

// Status computes the open/closed state of a schedule at the given instant.
//
// It returns nil when no determination is possible (no entries, or all
// notes-only/malformed); callers must treat nil as "unknown" rather than
// "known closed". Overnight windows are attributed to their start day: an
// entry open Monday 22:00-02:00 is also open Tuesday 00:00-02:00. When
// overlapping department windows disagree, any open window wins.
func Status(entries []entities.HourEntry, now time.Time) *entities.OpenStatus {
	windows := usableWindows(entries)
	if len(windows) == 0 {
		return nil
	}

	today := entities.WeekdayFromTime(now.Weekday())
	todayIdx := entities.WeekdayIndex(today)
	yesterday := entities.WeekOrder[(todayIdx+6)%7]
	nowMin := now.Hour()*60 + now.Minute()

	for _, w := range windows {
		switch {
		case w.allDay:
			if w.entry.HasDay(today) {
				return &entities.OpenStatus{IsOpen: true}
			}
		case w.overnight():
			// Open late today, or in the spillover from yesterday's entry.
			if (w.entry.HasDay(today) && nowMin >= w.openMin) ||
				(w.entry.HasDay(yesterday) && nowMin < w.closeMin) {
				return &entities.OpenStatus{IsOpen: true, ClosesAt: ClockLabel(w.entry.Close)}
			}
		default:
			if w.entry.HasDay(today) && nowMin >= w.openMin && nowMin < w.closeMin {
				return &entities.OpenStatus{IsOpen: true, ClosesAt: ClockLabel(w.entry.Close)}
			}
		}
	}

	// Closed now. Is there a window later today?
	bestLater := -1
	var opensAt string
	for _, w := range windows {
		if w.allDay || !w.entry.HasDay(today) || w.openMin <= nowMin {
			continue
		}
		if bestLater == -1 || w.openMin < bestLater {
			bestLater = w.openMin
			opensAt = ClockLabel(w.entry.Open)
		}
	}
	if bestLater >= 0 {
		return &entities.OpenStatus{IsOpen: false, OpensAt: opensAt}
	}

	// Walk forward through the week for the next day with a window.
	for offset := 1; offset <= 7; offset++ {
		day := entities.WeekOrder[(todayIdx+offset)%7]
		bestOpen := -1
		var next *entities.NextOpening
		for _, w := range windows {
			if !w.entry.HasDay(day) {
				continue
			}
			if w.allDay {
				// All-day beats any timed window for that day.
				next = &entities.NextOpening{Day: day}
				bestOpen = 0
				break
			}
			if bestOpen == -1 || w.openMin < bestOpen {
				bestOpen = w.openMin
				next = &entities.NextOpening{Day: day, Time: ClockLabel(w.entry.Open)}
			}
		}
		if next != nil {
			return &entities.OpenStatus{IsOpen: false, NextOpen: next}
		}
	}

	// Defensive fallback; unreachable while usableWindows is non-empty, since
	// the 7-day walk covers every weekday.
	return &entities.OpenStatus{IsOpen: false}
}

// OpenAfter reports whether any window extends at or past hourThreshold:00 on
// any day. It is independent of the current time; the "open after 5pm" filter
// calls it with 17.
func OpenAfter(entries []entities.HourEntry, hourThreshold int) bool {
	threshold := hourThreshold * 60
	for _, w := range usableWindows(entries) {
		if w.allDay || w.overnight() {
			return true
		}
		if w.closeMin >= threshold {
			return true
		}
	}
	return false
}
