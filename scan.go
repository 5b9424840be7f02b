package sqldate

import (
	"database/sql"
	"fmt"
	"time"
)

// scanner decodes result columns into a Value.
type scanner struct {
	codec *Codec
	dst   *Value
	tz    *time.Location
}

// Scanner returns an sql.Scanner that decodes a result column into dst,
// parsing text in time zone tz. A nil tz uses the Codec's default time zone.
// Columns of type string and []byte are parsed by [Codec.Parse], time.Time
// becomes a DateTime, and NULL or an empty string produces the zero Value.
// Please consult database-specific driver documentation for matching types.
func (c *Codec) Scanner(dst *Value, tz *time.Location) sql.Scanner {
	return scanner{codec: c, dst: dst, tz: tz}
}

// Scan implements sql.Scanner.
func (s scanner) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		*s.dst = Value{}
	case string:
		// An empty column is a NULL date rather than a malformed one.
		if src == "" {
			*s.dst = Value{}
			return nil
		}
		v, err := s.codec.Parse(src, s.tz)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScan, err)
		}
		*s.dst = v
	case []byte:
		return s.Scan(string(src))
	case time.Time:
		*s.dst = New(src, DateTime)
	default:
		return fmt.Errorf("%w: unable to scan type %T into Value", ErrScan, src)
	}
	return nil
}
