package sqldate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/theory/sqldate/calendar"
)

// Codec parses and formats date and time literals. A Codec is safe for
// concurrent use.
type Codec struct {
	cache *calendar.Cache
	tz    *time.Location
}

// Option configures a Codec.
type Option func(*Codec)

// WithCache shares cache among Codecs. By default each Codec creates its own.
func WithCache(cache *calendar.Cache) Option {
	return func(c *Codec) { c.cache = cache }
}

// WithTZ sets the time zone used when Parse or Format is passed a nil
// location, or ParseContext or FormatContext a Context without one. Defaults
// to UTC.
func WithTZ(tz *time.Location) Option {
	return func(c *Codec) { c.tz = tz }
}

// NewCodec creates a Codec configured by opts.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = calendar.New()
	}
	if c.tz == nil {
		c.tz = time.UTC
	}
	return c
}

// Cache returns the calendar cache used by c.
func (c *Codec) Cache() *calendar.Cache { return c.cache }

func (c *Codec) calendarFor(tz *time.Location) *calendar.Calendar {
	if tz == nil {
		tz = c.tz
	}
	return c.cache.Resolve(tz)
}

func (c *Codec) contextTZ(ctx context.Context) *time.Location {
	if tz, ok := tzFromContext(ctx); ok {
		return tz
	}
	return c.tz
}

// ParseContext is like Parse, using the time zone in ctx.
func (c *Codec) ParseContext(ctx context.Context, src string) (Value, error) {
	return c.Parse(src, c.contextTZ(ctx))
}

// Parse parses src as a date or time literal in time zone tz. The shape is
// determined by the length of src:
//
//   - 4: Year, YYYY, at midnight on January 1
//   - 8: Time, HH:MM:SS, on 2000-01-01
//   - 10: Date, YYYY-MM-DD, at midnight
//   - 19: DateTime, YYYY-MM-DD HH:MM:SS
//
// Any other length, a field that is not an integer, or fields that do not
// name a calendar instant, such as month 13, return a *LiteralError wrapping
// ErrInvalidLiteral. A Date or DateTime with a year, month, or day that is not
// positive, like the MySQL zero date "0000-00-00", returns a Value with no
// instant that retains src.
func (c *Codec) Parse(src string, tz *time.Location) (Value, error) {
	var (
		shape  Shape
		fields calendar.Fields
		err    error
	)

	switch len(src) {
	case yearWidth:
		shape = Year
		fields = calendar.Fields{Month: 1, Day: 1}
		fields.Year, err = atoi(src, 0, yearWidth)
	case timeWidth:
		shape = Time
		fields = calendar.Fields{Year: 2000, Month: 1, Day: 1}
		err = parseClock(src, 0, &fields)
	case dateWidth:
		shape = Date
		err = parseDate(src, &fields)
	case dateTimeWidth:
		shape = DateTime
		if err = parseDate(src, &fields); err == nil {
			err = parseClock(src, dateWidth+1, &fields)
		}
	default:
		return Value{}, invalidLiteral(src, fmt.Errorf("unrecognized length %d", len(src)))
	}
	if err != nil {
		return Value{}, invalidLiteral(src, err)
	}

	var raw string
	if shape == Date || shape == DateTime {
		raw = src
		if fields.Year <= 0 || fields.Month <= 0 || fields.Day <= 0 {
			return Raw(src, shape), nil
		}
	}

	t, err := c.calendarFor(tz).Compose(fields)
	if err != nil {
		return Value{}, invalidLiteral(src, err)
	}
	v := New(t, shape)
	v.raw = raw
	return v, nil
}

// parseDate parses YYYY-MM-DD at the start of src into f.
func parseDate(src string, f *calendar.Fields) error {
	var err error
	if f.Year, err = atoi(src, 0, 4); err != nil {
		return err
	}
	if f.Month, err = atoi(src, 5, 7); err != nil {
		return err
	}
	f.Day, err = atoi(src, 8, 10)
	return err
}

// parseClock parses HH:MM:SS starting at offset in src into f.
func parseClock(src string, offset int, f *calendar.Fields) error {
	var err error
	if f.Hour, err = atoi(src, offset, offset+2); err != nil {
		return err
	}
	if f.Minute, err = atoi(src, offset+3, offset+5); err != nil {
		return err
	}
	f.Second, err = atoi(src, offset+6, offset+8)
	return err
}

// atoi parses src[start:end] as a base 10 integer.
func atoi(src string, start, end int) (int, error) {
	n, err := strconv.Atoi(src[start:end])
	if err != nil {
		return 0, fmt.Errorf("field %q at offset %d is not an integer", src[start:end], start)
	}
	return n, nil
}

// FormatContext is like Format, using the time zone in ctx.
func (c *Codec) FormatContext(ctx context.Context, v Value) string {
	return c.Format(v, c.contextTZ(ctx))
}

// Format returns v as a single-quoted SQL literal of its shape in time zone
// tz, for example '2016-03-05 14:09:07'. If v has no instant, Format returns
// the unquoted zero literal of the shape: 0000-00-00, 00:00:00, 0000, or
// 0000-00-00 00:00:00.
func (c *Codec) Format(v Value, tz *time.Location) string {
	const quotedSize = dateTimeWidth + len(`''`)
	return string(c.AppendFormat(make([]byte, 0, quotedSize), v, tz))
}

// FormatTime formats t as a DateTime literal in time zone tz.
func (c *Codec) FormatTime(t time.Time, tz *time.Location) string {
	return c.Format(New(t, DateTime), tz)
}

// AppendFormat is like Format but appends the literal to dst and returns the
// extended buffer.
func (c *Codec) AppendFormat(dst []byte, v Value, tz *time.Location) []byte {
	t, ok := v.Time()
	if !ok {
		return append(dst, v.shape.zeroLiteral()...)
	}

	f := c.calendarFor(tz).Decompose(t)
	dst = append(dst, '\'')
	switch v.shape {
	case Date:
		dst = appendDate(dst, f)
	case Time:
		dst = appendClock(dst, f)
	case Year:
		dst = appendPadded(dst, f.Year, 4)
	default:
		dst = appendDate(dst, f)
		dst = append(dst, ' ')
		dst = appendClock(dst, f)
	}
	return append(dst, '\'')
}

func appendDate(dst []byte, f calendar.Fields) []byte {
	dst = appendPadded(dst, f.Year, 4)
	dst = append(dst, '-')
	dst = appendPadded(dst, f.Month, 2)
	dst = append(dst, '-')
	return appendPadded(dst, f.Day, 2)
}

func appendClock(dst []byte, f calendar.Fields) []byte {
	dst = appendPadded(dst, f.Hour, 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, f.Minute, 2)
	dst = append(dst, ':')
	return appendPadded(dst, f.Second, 2)
}

// appendPadded appends n to dst, left-padded with zeros to width digits.
// Negative numbers are appended with their sign and no padding.
func appendPadded(dst []byte, n, width int) []byte {
	digits := strconv.Itoa(n)
	if n >= 0 {
		for i := len(digits); i < width; i++ {
			dst = append(dst, '0')
		}
	}
	return append(dst, digits...)
}
