package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHoliday(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		holiday string
	}{
		{name: "fixed date", date: time.Date(2026, time.July, 4, 15, 0, 0, 0, time.UTC), holiday: "Independence Day"},
		{name: "floating date", date: time.Date(2026, time.November, 26, 9, 0, 0, 0, time.UTC), holiday: "Thanksgiving"},
		{name: "last monday of may", date: time.Date(2026, time.May, 25, 0, 0, 0, 0, time.UTC), holiday: "Memorial Day"},
		{name: "mlk day", date: time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), holiday: "Martin Luther King Jr. Day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := IsHoliday(tt.date)
			require.True(t, ok)
			assert.Equal(t, tt.holiday, name)
		})
	}

	t.Run("ordinary day", func(t *testing.T) {
		_, ok := IsHoliday(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
		assert.False(t, ok)
	})
}

func TestUpcomingHoliday(t *testing.T) {
	t.Run("within window", func(t *testing.T) {
		h := UpcomingHoliday(time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC), 7)
		require.NotNil(t, h)
		assert.Equal(t, "Independence Day", h.Name)
	})

	t.Run("holiday today counts", func(t *testing.T) {
		h := UpcomingHoliday(time.Date(2026, time.December, 25, 8, 0, 0, 0, time.UTC), 7)
		require.NotNil(t, h)
		assert.Equal(t, "Christmas Day", h.Name)
	})

	t.Run("crosses into next year", func(t *testing.T) {
		h := UpcomingHoliday(time.Date(2026, time.December, 28, 0, 0, 0, 0, time.UTC), 7)
		require.NotNil(t, h)
		assert.Equal(t, "New Year's Day", h.Name)
		assert.Equal(t, 2027, h.Date.Year())
	})

	t.Run("none in window", func(t *testing.T) {
		assert.Nil(t, UpcomingHoliday(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), 7))
	})
}
