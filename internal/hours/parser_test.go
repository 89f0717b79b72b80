package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

func TestParse_DayRangeWithTimes(t *testing.T) {
	entries := Parse("Mon-Fri 9am-5pm")
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, []entities.Weekday{entities.Monday, entities.Tuesday, entities.Wednesday, entities.Thursday, entities.Friday}, e.Days)
	assert.Equal(t, "09:00", e.Open)
	assert.Equal(t, "17:00", e.Close)
	assert.False(t, e.AllDay)
	assert.Empty(t, e.Department)
}

func TestParse_DepartmentSplit(t *testing.T) {
	entries := Parse("Women's Health: Mon-Fri 9am-5pm; Abortion Services: Wed")
	require.Len(t, entries, 2)

	assert.Equal(t, "Women's Health", entries[0].Department)
	assert.Equal(t, "09:00", entries[0].Open)
	assert.Equal(t, "17:00", entries[0].Close)

	assert.Equal(t, "Abortion Services", entries[1].Department)
	assert.Equal(t, []entities.Weekday{entities.Wednesday}, entries[1].Days)
	assert.True(t, entries[1].AllDay)
}

// A leading day name followed by a colon must stay a day, not become a
// department called "Monday".
func TestParse_DayPrefixIsNotADepartment(t *testing.T) {
	entries := Parse("Monday: 9am-5pm")
	require.Len(t, entries, 1)

	assert.Empty(t, entries[0].Department)
	assert.Equal(t, []entities.Weekday{entities.Monday}, entries[0].Days)
	assert.Equal(t, "09:00", entries[0].Open)
	assert.Equal(t, "17:00", entries[0].Close)
}

func TestParse_DayTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		days  []entities.Weekday
	}{
		{
			name:  "slash list",
			input: "Mon/Wed/Fri 10am-2pm",
			days:  []entities.Weekday{entities.Monday, entities.Wednesday, entities.Friday},
		},
		{
			name:  "comma list with full names",
			input: "Tuesday, Thursday 8am-12pm",
			days:  []entities.Weekday{entities.Tuesday, entities.Thursday},
		},
		{
			name:  "weekdays literal",
			input: "Weekdays 9am-5pm",
			days:  []entities.Weekday{entities.Monday, entities.Tuesday, entities.Wednesday, entities.Thursday, entities.Friday},
		},
		{
			name:  "weekend literal",
			input: "Weekends 10am-4pm",
			days:  []entities.Weekday{entities.Sunday, entities.Saturday},
		},
		{
			name:  "daily literal",
			input: "Daily 8am-8pm",
			days:  entities.WeekOrder[:],
		},
		{
			name:  "range plus extra day",
			input: "Mon-Thu, Sat 9am-1pm",
			days:  []entities.Weekday{entities.Monday, entities.Tuesday, entities.Wednesday, entities.Thursday, entities.Saturday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.input)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.days, entries[0].Days)
			assert.False(t, entries[0].AllDay)
		})
	}
}

func TestParse_TwentyFourSeven(t *testing.T) {
	entries := Parse("24/7")
	require.Len(t, entries, 1)

	assert.Len(t, entries[0].Days, 7)
	assert.True(t, entries[0].AllDay)
	assert.Empty(t, entries[0].Open)
}

func TestParse_TimeNormalization(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		open, close string
	}{
		{name: "minutes preserved", input: "Mon 9:30am-5:15pm", open: "09:30", close: "17:15"},
		{name: "noon and midnight", input: "Mon 12am-12pm", open: "00:00", close: "12:00"},
		{name: "bare hours read as business hours", input: "Mon 9-5", open: "09:00", close: "17:00"},
		{name: "am open with bare close", input: "Mon 9am-5", open: "09:00", close: "17:00"},
		{name: "overnight span kept intact", input: "Mon 10pm-2am", open: "22:00", close: "02:00"},
		{name: "24 hour input", input: "Mon 08:00-16:30", open: "08:00", close: "16:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.input)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.open, entries[0].Open)
			assert.Equal(t, tt.close, entries[0].Close)
		})
	}
}

func TestParse_NotesFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no day token", input: "By appointment only"},
		{name: "wrapping range is unparseable", input: "Sat-Mon 9am-5pm"},
		{name: "arbitrary text", input: "call ahead for availability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.input)
			require.Len(t, entries, 1)
			assert.Empty(t, entries[0].Days)
			assert.False(t, entries[0].AllDay)
			assert.NotEmpty(t, entries[0].Notes)
		})
	}
}

// Parsing is total: any input, including garbage, yields at least one entry
// and never panics.
func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		";;;",
		"::::",
		"Mon-",
		"-5pm",
		"99am-105pm",
		"Closed",
		"Mon-Fri 9am-5pm; ???",
		"\n\n;\n",
		"Sat-Mon",
	}

	for _, input := range inputs {
		entries := Parse(input)
		assert.NotEmpty(t, entries, "input %q", input)
	}
}

func TestParse_MultiClauseMixed(t *testing.T) {
	entries := Parse("Mon-Fri 9am-5pm; Sat 10am-2pm; walk-ins welcome")
	require.Len(t, entries, 3)

	assert.Equal(t, "09:00", entries[0].Open)
	assert.Equal(t, []entities.Weekday{entities.Saturday}, entries[1].Days)
	assert.Equal(t, "10:00", entries[1].Open)
	assert.Equal(t, "14:00", entries[1].Close)
	assert.True(t, entries[2].IsNotesOnly())
	assert.Equal(t, "walk-ins welcome", entries[2].Notes)
}

func TestNormalize_StructuredEntries(t *testing.T) {
	in := []entities.HourEntry{
		{Days: []entities.Weekday{entities.Friday, entities.Monday, entities.Monday}, Open: "09:00", Close: "17:00"},
		{Days: []entities.Weekday{entities.Saturday}, AllDay: true, Open: "08:00", Close: "20:00"},
	}

	out := Normalize(in)
	require.Len(t, out, 2)

	assert.Equal(t, []entities.Weekday{entities.Monday, entities.Friday}, out[0].Days)
	assert.True(t, out[1].AllDay)
	assert.Empty(t, out[1].Open, "all-day entries drop their ignored times")
	assert.Empty(t, out[1].Close)
}
