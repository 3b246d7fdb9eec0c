package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the serialized form of a Date at the storage and API
// boundaries.
const DateLayout = "01/02/2006"

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses an MM/DD/YYYY string and rejects impossible dates.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: want MM/DD/YYYY", s)
	}
	return DateOf(t), nil
}

var reStoredDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseStoredDate reads a date column. Rows written before dates were
// checked against the calendar only match the MM/DD/YYYY shape; for those
// ("02/30/2024", "13/45/2024") the fields are kept as written, so the value
// prints back unchanged and orders by year, month, day like the SQL listing.
func ParseStoredDate(s string) (Date, error) {
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	m := reStoredDate.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("date %q: want MM/DD/YYYY", s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// Valid reports whether d is a real calendar date.
func (d Date) Valid() bool {
	_, err := ParseDate(d.String())
	return err == nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d falls on an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", int(d.Month), d.Day, d.Year)
}

// MarshalJSON encodes the date as an MM/DD/YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an MM/DD/YYYY string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date in its MM/DD/YYYY text form so existing rows stay
// readable.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan reads a date stored as MM/DD/YYYY text, accepting legacy values as
// ParseStoredDate does.
func (d *Date) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
	parsed, err := ParseStoredDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
