package entities

import "time"

// Weekday is a short weekday token as it appears in clinic hour data ("Mon".."Sun").
type Weekday string

const (
	Sunday    Weekday = "Sun"
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
)

// WeekOrder is the canonical 7-day ordering used for day-range expansion
// and next-open lookahead. Sunday first.
var WeekOrder = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Weekdays and Weekend are the conventional groupings used by hour text
// like "weekdays 9am-5pm".
var (
	Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
	Weekend  = []Weekday{Saturday, Sunday}
)

var weekdayFullNames = map[Weekday]string{
	Sunday:    "Sunday",
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
}

// WeekdayIndex returns the position of d in WeekOrder, or -1 for an unknown token.
func WeekdayIndex(d Weekday) int {
	for i, w := range WeekOrder {
		if w == d {
			return i
		}
	}
	return -1
}

// WeekdayFromTime converts a time.Weekday to its short token.
func WeekdayFromTime(d time.Weekday) Weekday {
	return WeekOrder[int(d)]
}

// FullName returns the long weekday name ("Monday"), or the token itself if unknown.
func (d Weekday) FullName() string {
	if name, ok := weekdayFullNames[d]; ok {
		return name
	}
	return string(d)
}

// DefaultDepartment is used when an hour entry does not name a department.
const DefaultDepartment = "General"

// HourEntry is one schedule rule for one clinic department.
//
// If AllDay is true, Open and Close are ignored. Otherwise both are expected
// to be "HH:MM" 24-hour strings; a close time numerically before the open time
// is an overnight window that spills into the following day.
type HourEntry struct {
	Department string    `json:"department,omitempty"`
	Days       []Weekday `json:"days"`
	Open       string    `json:"open,omitempty"`
	Close      string    `json:"close,omitempty"`
	AllDay     bool      `json:"allDay,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// DepartmentOrDefault returns the entry's department, falling back to "General".
func (e HourEntry) DepartmentOrDefault() string {
	if e.Department == "" {
		return DefaultDepartment
	}
	return e.Department
}

// IsNotesOnly reports whether the entry carries no schedulable days and exists
// only to preserve free-text that could not be parsed.
func (e HourEntry) IsNotesOnly() bool {
	return len(e.Days) == 0
}

// HasDay reports whether the entry applies on the given weekday.
func (e HourEntry) HasDay(d Weekday) bool {
	for _, day := range e.Days {
		if day == d {
			return true
		}
	}
	return false
}
