// Package clock renders wall-clock time with strftime patterns in an
// explicit location. It never touches the process TZ.
package clock

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/ncruces/go-strftime"
)

// ErrEmptyTime is returned when a pattern renders to nothing
var ErrEmptyTime = errors.New("time rendered empty")

// Formatter renders time in a fixed zone
type Formatter struct {
	pattern string
	layout  string
	loc     *time.Location
}

// NewFormatter resolves timezone and converts the strftime pattern to a Go
// layout once, so a bad config fails at startup
func NewFormatter(pattern, timezone string) (*Formatter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	if pattern == "" {
		return nil, fmt.Errorf("%w: no time format", ErrEmptyTime)
	}
	layout, err := strftime.Layout(pattern)
	if err != nil {
		return nil, fmt.Errorf("unsupported time format %q: %w", pattern, err)
	}

	return &Formatter{pattern: pattern, layout: layout, loc: loc}, nil
}

// Location returns the zone times are rendered in
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Format renders now in the formatter's zone
func (f *Formatter) Format(now time.Time) (string, error) {
	s := now.In(f.loc).Format(f.layout)
	if s == "" {
		return "", fmt.Errorf("%w: pattern %q", ErrEmptyTime, f.pattern)
	}
	return s, nil
}

// FormatTime renders now with pattern in the named zone
func FormatTime(pattern, timezone string, now time.Time) (string, error) {
	f, err := NewFormatter(pattern, timezone)
	if err != nil {
		return "", err
	}
	return f.Format(now)
}
