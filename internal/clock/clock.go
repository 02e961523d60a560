// Package clock pins every stored timestamp to one display timezone so the
// scheduled-content windows and daily bottle draws agree on what "today" is.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct {
	loc *time.Location
}

// NewSystem loads the named zone, falling back to a fixed UTC+8 offset when
// the zone database is unavailable.
func NewSystem(tz string) *System {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.FixedZone("UTC+8", 8*3600)
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time { return time.Now().In(s.loc) }

// Fixed always reports the same instant. Test use only.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Date formats t as the calendar-day key used by bottle views.
func Date(t time.Time) string { return t.Format("2006-01-02") }
