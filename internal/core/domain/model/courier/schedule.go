package courier

import (
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDayWindowIsNotConstructed is returned when using an improperly
// initialized DayWindow.
var ErrDayWindowIsNotConstructed = fmt.Errorf(
	"DayWindow must be created via NewDayWindow constructor")

// DayWindow is one weekday's working window. Start and end are wall-clock
// times of the form "HH:MM"; the window is inclusive on both ends, so a
// courier working 08:00-18:00 is still working at exactly 18:00. An inactive
// window keeps its hours but never matches.
type DayWindow struct {
	start  string
	end    string
	active bool

	startMinute int
	endMinute   int

	guard guard.ConstructorGuard
}

// NewDayWindow creates a validated working window. Start and end must parse
// as "HH:MM" and start must not be after end.
func NewDayWindow(start, end string, active bool) (DayWindow, error) {
	startMinute, err := parseMinuteOfDay(start)
	if err != nil {
		return DayWindow{}, errs.NewValueIsInvalidErrorWithCause("start", err)
	}
	endMinute, err := parseMinuteOfDay(end)
	if err != nil {
		return DayWindow{}, errs.NewValueIsInvalidErrorWithCause("end", err)
	}
	if startMinute > endMinute {
		return DayWindow{}, errs.NewValueIsInvalidErrorWithCause("start",
			fmt.Errorf("%s is after %s", start, end))
	}

	return DayWindow{
		start:       start,
		end:         end,
		active:      active,
		startMinute: startMinute,
		endMinute:   endMinute,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Start returns the "HH:MM" start of the window.
func (d DayWindow) Start() string { return d.start }

// End returns the "HH:MM" end of the window.
func (d DayWindow) End() string { return d.end }

// IsActive reports whether the window counts as working time at all.
func (d DayWindow) IsActive() bool { return d.active }

// Validate ensures the DayWindow was constructed via NewDayWindow.
func (d DayWindow) Validate() error {
	return d.guard.Validate(ErrDayWindowIsNotConstructed)
}

// Contains reports whether the wall-clock time of t falls inside the window.
// Both boundaries are inclusive. An inactive window contains nothing.
func (d DayWindow) Contains(t time.Time) bool {
	if !d.active {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return d.startMinute <= minute && minute <= d.endMinute
}

func parseMinuteOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%q is not of the form HH:MM", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%q is not of the form HH:MM", s)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("%q is not of the form HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q is not a valid time of day", s)
	}
	return hour*60 + minute, nil
}

// WeekSchedule maps weekdays to working windows. Days without an entry are
// non-working days. The zero value is a valid empty schedule under which the
// courier is never within working hours.
type WeekSchedule struct {
	days map[time.Weekday]DayWindow
}

// NewWeekSchedule creates a schedule from per-weekday windows. Every window
// must be constructed via NewDayWindow.
func NewWeekSchedule(days map[time.Weekday]DayWindow) (WeekSchedule, error) {
	copied := make(map[time.Weekday]DayWindow, len(days))
	for day, window := range days {
		if err := window.Validate(); err != nil {
			return WeekSchedule{}, errs.NewValueIsInvalidErrorWithCause(day.String(), err)
		}
		copied[day] = window
	}
	return WeekSchedule{days: copied}, nil
}

// WindowFor returns the window configured for a weekday, if any.
func (w WeekSchedule) WindowFor(day time.Weekday) (DayWindow, bool) {
	window, ok := w.days[day]
	return window, ok
}

// Days returns a copy of the per-weekday windows.
func (w WeekSchedule) Days() map[time.Weekday]DayWindow {
	copied := make(map[time.Weekday]DayWindow, len(w.days))
	for day, window := range w.days {
		copied[day] = window
	}
	return copied
}

// Covers reports whether t falls inside the working window of its weekday.
// Days with no window, or with an inactive one, cover nothing.
func (w WeekSchedule) Covers(t time.Time) bool {
	window, ok := w.days[t.Weekday()]
	if !ok {
		return false
	}
	return window.Contains(t)
}
