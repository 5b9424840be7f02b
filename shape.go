package sqldate

import "fmt"

// Shape identifies one of the textual date and time formats. The zero value
// is DateTime.
type Shape uint8

const (
	// DateTime is a date and time of day, YYYY-MM-DD HH:MM:SS.
	DateTime Shape = iota

	// Date is a calendar date, YYYY-MM-DD.
	Date

	// Time is a time of day, HH:MM:SS.
	Time

	// Year is a calendar year, YYYY.
	Year
)

// Literal widths on the wire.
const (
	yearWidth     = len("2006")
	timeWidth     = len("15:04:05")
	dateWidth     = len("2006-01-02")
	dateTimeWidth = len("2006-01-02 15:04:05")
)

//nolint:gochecknoglobals
var shapeNames = [...]string{
	DateTime: "datetime",
	Date:     "date",
	Time:     "time",
	Year:     "year",
}

// String returns the lowercase name of the shape.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("sqldate: unknown shape %d", s)
	}
	return []byte(shapeNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	for i, name := range shapeNames {
		if name == string(text) {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("sqldate: unknown shape %q", text)
}

// zeroLiteral returns the SQL zero value for s, the legacy representation of
// an absent date or time.
func (s Shape) zeroLiteral() string {
	switch s {
	case Date:
		return "0000-00-00"
	case Time:
		return "00:00:00"
	case Year:
		return "0000"
	default:
		return "0000-00-00 00:00:00"
	}
}
