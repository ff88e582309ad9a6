package timetable

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextWrapsSaturdayToSunday(t *testing.T) {
	day := 0
	for i := 1; i <= 6; i++ {
		day = Next(day)
		assert.Equal(t, i, day)
	}
	assert.Equal(t, 0, Next(6))
}

func TestPrevWrapsSundayToSaturday(t *testing.T) {
	assert.Equal(t, 6, Prev(0))
	assert.Equal(t, 0, Prev(1))
	assert.Equal(t, 5, Prev(6))
}

func TestFullWeekRoundTrip(t *testing.T) {
	day := 3
	for i := 0; i < 7; i++ {
		day = Next(day)
	}
	assert.Equal(t, 3, day)
}

func TestTodayMatchesWeekday(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Today(monday))
	assert.Equal(t, "Monday", DayName(Today(monday)))
}

func TestRenderShowsEntries(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, 1)

	out := buf.String()
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Data Structures")
	assert.Contains(t, out, "09:00 - 10:30")
}

func TestRenderEmptyDay(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, 0)

	assert.Contains(t, buf.String(), "Sunday")
	assert.Contains(t, buf.String(), "No classes")
}
