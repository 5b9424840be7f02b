package sqldate

import (
	"context"
	"time"
)

// tzContextKey keys the session time zone in a Context.
type tzContextKey struct{}

// ContextWithTZ returns a copy of ctx carrying tz as the session time zone
// for [Codec.ParseContext] and [Codec.FormatContext]. A nil tz returns ctx
// unchanged, so the Codec's default zone still applies.
func ContextWithTZ(ctx context.Context, tz *time.Location) context.Context {
	if tz == nil {
		return ctx
	}
	return context.WithValue(ctx, tzContextKey{}, tz)
}

// TZFromContext returns the session time zone carried by ctx, or time.UTC
// when there is none. Codecs fall back to their own default instead.
func TZFromContext(ctx context.Context) *time.Location {
	if tz, ok := tzFromContext(ctx); ok {
		return tz
	}
	return time.UTC
}

func tzFromContext(ctx context.Context) (*time.Location, bool) {
	tz, ok := ctx.Value(tzContextKey{}).(*time.Location)
	return tz, ok
}
