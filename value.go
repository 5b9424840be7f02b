package sqldate

import "time"

// Value is an immutable date or time value of a particular Shape. It holds
// either an instant, stored as whole seconds since the Unix epoch, or the
// literal text it was parsed from when that text names no instant, such as
// the MySQL zero date "0000-00-00". The zero Value is a DateTime with
// neither.
type Value struct {
	unix  int64
	valid bool
	raw   string
	shape Shape
}

// New returns a Value for the instant t, truncated to the second.
func New(t time.Time, shape Shape) Value {
	return FromUnix(t.Unix(), shape)
}

// FromUnix returns a Value for the instant sec seconds since the Unix epoch.
func FromUnix(sec int64, shape Shape) Value {
	return Value{unix: sec, valid: true, shape: shape}
}

// Raw returns a Value with no instant that retains text for display.
func Raw(text string, shape Shape) Value {
	return Value{raw: text, shape: shape}
}

// Now returns a Value for the current instant.
func Now(shape Shape) Value {
	return New(time.Now(), shape)
}

// Shape returns the shape of v.
func (v Value) Shape() Shape { return v.shape }

// Time returns the instant of v in UTC and true, or the zero time.Time and
// false if v has no instant.
func (v Value) Time() (time.Time, bool) {
	if !v.valid {
		return time.Time{}, false
	}
	return time.Unix(v.unix, 0).UTC(), true
}

// Unix returns the instant of v as seconds since the Unix epoch and true, or
// 0 and false if v has no instant.
func (v Value) Unix() (int64, bool) {
	return v.unix, v.valid
}

// Literal returns the text v was parsed from, if it was retained.
func (v Value) Literal() string { return v.raw }

// IsZero returns true if v has no instant.
func (v Value) IsZero() bool { return !v.valid }

// Equal reports whether v and u represent the same instant. Shape is
// ignored, so a Date and a DateTime at the same instant are equal. Two Values
// without instants are equal. Use Same to compare shapes, too.
func (v Value) Equal(u Value) bool {
	if v.valid != u.valid {
		return false
	}
	return !v.valid || v.unix == u.unix
}

// Same reports whether v and u have the same shape and represent the same
// instant.
func (v Value) Same(u Value) bool {
	return v.shape == u.shape && v.Equal(u)
}

// Compare compares the instant of v with u. If v is before u, it returns -1;
// if v is after u, it returns +1; if they're the same, it returns 0. A Value
// without an instant sorts before every Value with one.
func (v Value) Compare(u Value) int {
	switch {
	case v.valid && u.valid:
		switch {
		case v.unix < u.unix:
			return -1
		case v.unix > u.unix:
			return 1
		}
		return 0
	case v.valid:
		return 1
	case u.valid:
		return -1
	}
	return 0
}

// describeFormat renders instants for display.
const describeFormat = "2006-01-02 15:04:05 -0700"

// String returns the instant of v in UTC for display, for example
// "2016-03-05 14:09:07 +0000". Without an instant it returns the retained
// literal, or the empty string if there is none.
func (v Value) String() string {
	if t, ok := v.Time(); ok {
		return t.Format(describeFormat)
	}
	return v.raw
}
