package infra

import (
	"errors"
	"strings"
	"time"
)

// MaskSentinel prefixes values the server withholds, e.g. "**/**" expirations.
const MaskSentinel = "*"

// DateTimeLayout is the canonical wire form of timestamps.
const DateTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// DateTimeNanoLayout renders timestamps carrying sub-microsecond precision.
const DateTimeNanoLayout = "2006-01-02T15:04:05.000000000-07:00"

// DateLayout is the wire form of civil dates used in query filters.
const DateLayout = "2006-01-02"

var errMissingZone = errors.New("timestamp has no zone designator")

// IsMasked reports whether raw is a sentinel-masked value.
func IsMasked(raw string) bool {
	return strings.HasPrefix(raw, MaskSentinel)
}

// Unmask returns "" for masked values and raw otherwise.
func Unmask(raw string) string {
	if IsMasked(raw) {
		return ""
	}

	return raw
}

// ParseDateTime parses a server timestamp. Empty and masked values yield nil
// without error. Fractional seconds are optional and kept at full precision;
// a zone designator is required.
func ParseDateTime(raw string) (*time.Time, error) {
	if raw == "" || IsMasked(raw) {
		return nil, nil //nolint:nilnil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		if _, localErr := time.Parse("2006-01-02T15:04:05.999999999", raw); localErr == nil {
			err = errMissingZone
		}

		return nil, &FormatError{Value: raw, Layout: "datetime", Err: err}
	}

	return &parsed, nil
}

// FormatDateTime renders t in the canonical wire form, switching to nine
// fractional digits when t has precision finer than a microsecond.
func FormatDateTime(t time.Time) string {
	if t.Nanosecond()%int(time.Microsecond) != 0 {
		return t.Format(DateTimeNanoLayout)
	}

	return t.Format(DateTimeLayout)
}

// Date is a civil date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, &FormatError{Value: raw, Layout: "date", Err: err}
	}

	return DateOf(parsed), nil
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
