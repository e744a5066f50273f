// Package date provides a day granularity Date used by all cartera records.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format is the canonical ISO-8601 form used to read and write dates.
const Format = "2006-01-02"

// looseFormat allows single-digit month and day, used when importing.
const looseFormat = "2006-1-2"

// Date represents a calendar day with no timezone semantics.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// IsZero reports whether d is the zero Date, that is an unset date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) Add(days int) Date  { return New(d.y, d.m, d.d+days) }
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }
func (d Date) Equal(x Date) bool  { return d == x }

// String formats the date in its canonical format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

// Parse parses a Date in the strict YYYY-MM-DD format.
func Parse(str string) (Date, error) {
	on, err := time.Parse(Format, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// ParseLoose is like Parse but accepts single-digit month and day and drops
// a time of day after a 'T' or a space, as spreadsheets export them.
func ParseLoose(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if i := strings.IndexAny(str, "T "); i >= 0 {
		str = str[:i]
	}
	on, err := time.Parse(looseFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON reads a date from a json string in the canonical format.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
