package cli

import (
	"context"
	"time"

	"campusvault/internal/client/timetable"
)

// Timetable opens the timetable page on today's schedule.
func (a *App) Timetable(ctx context.Context) error {
	a.day = timetable.Today(time.Now())
	a.Navigate(ctx, "/timetable")
	return nil
}

// NextDay steps the timetable view one day forward.
func (a *App) NextDay(ctx context.Context) error {
	a.day = timetable.Next(a.day)
	if a.path == "/timetable" {
		timetable.Render(a.out, a.day)
	}
	return nil
}

// PrevDay steps the timetable view one day back.
func (a *App) PrevDay(ctx context.Context) error {
	a.day = timetable.Prev(a.day)
	if a.path == "/timetable" {
		timetable.Render(a.out, a.day)
	}
	return nil
}
