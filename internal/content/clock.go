package content

import "time"

// DateLayout is the date format used in filenames and front matter.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock; tests use it to pin "today".
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the local wall clock.
var SystemClock Clock = systemClock{}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errValidation("date", "expected YYYY-MM-DD, got "+s)
	}
	return t, nil
}
