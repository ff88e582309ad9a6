// Package timetable renders the static weekly class schedule. The schedule
// is fixed data compiled into the client; days are addressed 0..6 starting
// at Sunday, and stepping wraps Saturday to Sunday and back.
package timetable

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// Entry is one scheduled class slot.
type Entry struct {
	Time    string
	Room    string
	Subject string
	Kind    string
}

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// week holds the schedule for each day, indexed by weekday (Sunday = 0).
var week = [7][]Entry{
	0: nil,
	1: {
		{"09:00 - 10:30", "B-204", "Calculus II", "Lecture"},
		{"11:00 - 12:30", "A-101", "Data Structures", "Lecture"},
		{"14:00 - 15:30", "Lab 3", "Data Structures", "Lab"},
	},
	2: {
		{"09:00 - 10:30", "C-310", "Linear Algebra", "Lecture"},
		{"11:00 - 12:30", "B-204", "Operating Systems", "Lecture"},
		{"15:00 - 16:30", "A-101", "Technical Writing", "Tutorial"},
	},
	3: {
		{"10:00 - 11:30", "A-101", "Data Structures", "Tutorial"},
		{"13:00 - 14:30", "Lab 1", "Operating Systems", "Lab"},
	},
	4: {
		{"09:00 - 10:30", "B-204", "Calculus II", "Lecture"},
		{"11:00 - 12:30", "C-310", "Computer Networks", "Lecture"},
		{"14:00 - 15:30", "Lab 2", "Computer Networks", "Lab"},
	},
	5: {
		{"09:00 - 10:30", "C-310", "Linear Algebra", "Tutorial"},
		{"11:00 - 12:30", "B-204", "Operating Systems", "Lecture"},
	},
	6: nil,
}

// Today returns the schedule index for the given moment.
func Today(now time.Time) int {
	return int(now.Weekday())
}

// DayName returns the display name for a day index.
func DayName(day int) string {
	return dayNames[normalize(day)]
}

// ForDay returns the entries scheduled on the given day.
func ForDay(day int) []Entry {
	return week[normalize(day)]
}

// Next steps one day forward, wrapping Saturday to Sunday.
func Next(day int) int {
	if day <= 5 {
		return day + 1
	}
	return 0
}

// Prev steps one day back, wrapping Sunday to Saturday.
func Prev(day int) int {
	if day >= 1 {
		return day - 1
	}
	return 6
}

func normalize(day int) int {
	return ((day % 7) + 7) % 7
}

// Render writes the schedule table for one day.
func Render(w io.Writer, day int) {
	color.New(color.Bold).Fprintln(w, DayName(day))

	entries := ForDay(day)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No classes.")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tROOM\tSUBJECT\tTYPE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Time, e.Room, e.Subject, e.Kind)
	}
	tw.Flush()
}
