package entities

// NextOpening names the next day a clinic opens and at what time.
// Time is empty when that day's window is all-day.
type NextOpening struct {
	Day  Weekday `json:"day"`
	Time string  `json:"time,omitempty"`
}

// OpenStatus is the evaluated open/closed state of a clinic at a reference
// instant. A nil *OpenStatus means the state could not be determined (no
// usable hour entries), which callers must treat as "unknown" rather than
// "known closed".
type OpenStatus struct {
	IsOpen bool `json:"is_open"`

	// ClosesAt is set while open, unless the active window is all-day.
	ClosesAt string `json:"closes_at,omitempty"`

	// OpensAt is set while closed if a window opens later the same day.
	OpensAt string `json:"opens_at,omitempty"`

	// NextOpen is set while closed if the next window falls on a later day
	// within a 7-day lookahead.
	NextOpen *NextOpening `json:"next_open,omitempty"`
}

// OpensLaterToday reports whether the clinic is closed now but has a window
// later the same day.
func (s *OpenStatus) OpensLaterToday() bool {
	return s != nil && !s.IsOpen && s.OpensAt != ""
}
