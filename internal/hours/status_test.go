package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// at builds a reference instant and asserts its weekday so the fixtures stay
// honest.
func at(t *testing.T, day time.Weekday, hour, min int) time.Time {
	t.Helper()
	// 2026-03-01 is a Sunday.
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	instant := base.AddDate(0, 0, int(day)).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	require.Equal(t, day, instant.Weekday())
	return instant
}

func weekdayNineToFive() []entities.HourEntry {
	return []entities.HourEntry{
		{Days: []entities.Weekday{entities.Monday, entities.Tuesday, entities.Wednesday, entities.Thursday, entities.Friday}, Open: "09:00", Close: "17:00"},
	}
}

func TestStatus_OpenWithinWindow(t *testing.T) {
	status := Status(weekdayNineToFive(), at(t, time.Wednesday, 10, 30))

	require.NotNil(t, status)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "5pm", status.ClosesAt)
}

func TestStatus_WindowBoundaries(t *testing.T) {
	entries := weekdayNineToFive()

	t.Run("open boundary is inclusive", func(t *testing.T) {
		status := Status(entries, at(t, time.Monday, 9, 0))
		require.NotNil(t, status)
		assert.True(t, status.IsOpen)
	})

	t.Run("close boundary is exclusive", func(t *testing.T) {
		status := Status(entries, at(t, time.Monday, 17, 0))
		require.NotNil(t, status)
		assert.False(t, status.IsOpen)
	})
}

func TestStatus_OpensLaterToday(t *testing.T) {
	status := Status(weekdayNineToFive(), at(t, time.Tuesday, 7, 45))

	require.NotNil(t, status)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "9am", status.OpensAt)
	assert.True(t, status.OpensLaterToday())
	assert.Nil(t, status.NextOpen)
}

func TestStatus_NextOpenDay(t *testing.T) {
	t.Run("after close on Friday points at Monday", func(t *testing.T) {
		status := Status(weekdayNineToFive(), at(t, time.Friday, 18, 0))
		require.NotNil(t, status)
		assert.False(t, status.IsOpen)
		require.NotNil(t, status.NextOpen)
		assert.Equal(t, entities.Monday, status.NextOpen.Day)
		assert.Equal(t, "9am", status.NextOpen.Time)
	})

	t.Run("weekend wraps through the week", func(t *testing.T) {
		status := Status(weekdayNineToFive(), at(t, time.Saturday, 12, 0))
		require.NotNil(t, status)
		require.NotNil(t, status.NextOpen)
		assert.Equal(t, entities.Monday, status.NextOpen.Day)
	})

	t.Run("all-day next opening has no time", func(t *testing.T) {
		entries := []entities.HourEntry{
			{Days: []entities.Weekday{entities.Wednesday}, AllDay: true},
		}
		status := Status(entries, at(t, time.Monday, 12, 0))
		require.NotNil(t, status)
		require.NotNil(t, status.NextOpen)
		assert.Equal(t, entities.Wednesday, status.NextOpen.Day)
		assert.Empty(t, status.NextOpen.Time)
	})
}

// A window whose close precedes its open spans midnight: open Monday
// 22:00-02:00 means open late Monday and into early Tuesday, attributed to
// the Monday entry.
func TestStatus_OvernightWindow(t *testing.T) {
	entries := []entities.HourEntry{
		{Days: []entities.Weekday{entities.Monday}, Open: "22:00", Close: "02:00"},
	}

	t.Run("open before midnight", func(t *testing.T) {
		status := Status(entries, at(t, time.Monday, 23, 30))
		require.NotNil(t, status)
		assert.True(t, status.IsOpen)
		assert.Equal(t, "2am", status.ClosesAt)
	})

	t.Run("still open after midnight", func(t *testing.T) {
		status := Status(entries, at(t, time.Tuesday, 1, 0))
		require.NotNil(t, status)
		assert.True(t, status.IsOpen)
	})

	t.Run("closed after the spillover ends", func(t *testing.T) {
		status := Status(entries, at(t, time.Tuesday, 3, 0))
		require.NotNil(t, status)
		assert.False(t, status.IsOpen)
	})
}

func TestStatus_AllDayEntry(t *testing.T) {
	entries := []entities.HourEntry{
		{Days: []entities.Weekday{entities.Sunday}, AllDay: true},
	}

	status := Status(entries, at(t, time.Sunday, 3, 0))
	require.NotNil(t, status)
	assert.True(t, status.IsOpen)
	assert.Empty(t, status.ClosesAt, "all-day windows have no close time")
}

// Any open window wins when overlapping department schedules disagree.
func TestStatus_OpenWinsAcrossDepartments(t *testing.T) {
	entries := []entities.HourEntry{
		{Department: "Women's Health", Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "12:00"},
		{Department: "Express Testing", Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "19:00"},
	}

	status := Status(entries, at(t, time.Monday, 15, 0))
	require.NotNil(t, status)
	assert.True(t, status.IsOpen)
}

func TestStatus_Indeterminate(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		assert.Nil(t, Status(nil, at(t, time.Monday, 12, 0)))
	})

	t.Run("notes only", func(t *testing.T) {
		entries := []entities.HourEntry{{Notes: "By appointment only"}}
		assert.Nil(t, Status(entries, at(t, time.Monday, 12, 0)))
	})

	t.Run("all entries malformed", func(t *testing.T) {
		entries := []entities.HourEntry{
			{Days: []entities.Weekday{entities.Monday}, Open: "soon", Close: "late"},
		}
		assert.Nil(t, Status(entries, at(t, time.Monday, 12, 0)))
	})
}

func TestStatus_MalformedEntrySkipped(t *testing.T) {
	entries := []entities.HourEntry{
		{Days: []entities.Weekday{entities.Monday}, Open: "garbage", Close: "17:00"},
		{Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "17:00"},
	}

	status := Status(entries, at(t, time.Monday, 10, 0))
	require.NotNil(t, status)
	assert.True(t, status.IsOpen)
}

func TestStatus_Deterministic(t *testing.T) {
	entries := Parse("Women's Health: Mon-Fri 9am-5pm; Abortion Services: Wed")
	now := at(t, time.Wednesday, 11, 0)

	first := Status(entries, now)
	second := Status(entries, now)
	assert.Equal(t, first, second)
}

func TestOpenAfter(t *testing.T) {
	tests := []struct {
		name    string
		entries []entities.HourEntry
		want    bool
	}{
		{
			name:    "closes before threshold",
			entries: []entities.HourEntry{{Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "16:00"}},
			want:    false,
		},
		{
			name:    "closes exactly at threshold",
			entries: []entities.HourEntry{{Days: []entities.Weekday{entities.Monday}, Open: "09:00", Close: "17:00"}},
			want:    true,
		},
		{
			name:    "evening hours on one day only",
			entries: []entities.HourEntry{{Days: []entities.Weekday{entities.Thursday}, Open: "12:00", Close: "20:00"}},
			want:    true,
		},
		{
			name:    "all day counts",
			entries: []entities.HourEntry{{Days: []entities.Weekday{entities.Saturday}, AllDay: true}},
			want:    true,
		},
		{
			name:    "overnight window extends past any threshold",
			entries: []entities.HourEntry{{Days: []entities.Weekday{entities.Friday}, Open: "22:00", Close: "02:00"}},
			want:    true,
		},
		{
			name:    "notes only cannot satisfy",
			entries: []entities.HourEntry{{Notes: "call ahead"}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpenAfter(tt.entries, 17))
		})
	}
}
