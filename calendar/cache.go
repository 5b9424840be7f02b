package calendar

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/sync/singleflight"
)

// Cache maps time zones to Calendars. Calendars are created lazily on first
// use and retained for the life of the Cache. A Cache is safe for concurrent
// use; the zero value is not, use [New].
type Cache struct {
	mu     sync.Mutex
	cals   map[string]*Calendar
	byLoc  map[*time.Location]*Calendar
	group  singleflight.Group
	build  func(key string, loc *time.Location) *Calendar
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger that records calendar construction at debug
// level. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		cals:   map[string]*Calendar{},
		byLoc:  map[*time.Location]*Calendar{},
		build:  newCalendar,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the Calendar for loc, creating and storing it if necessary.
// A nil loc resolves to UTC. Concurrent callers resolving the same zone all
// receive the same Calendar, and concurrent misses build it once.
//
// Zones are identified by name and by their offsets on 2000-01-01 and
// 2000-07-01, so two distinct locations with the same name that agree on both
// dates share a Calendar. Passing the *time.Location a Calendar was built for
// skips computing that key.
func (c *Cache) Resolve(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if cal := c.byLocation(loc); cal != nil {
		return cal
	}

	key := zoneKey(loc)
	if cal := c.byKey(key); cal != nil {
		return cal
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		cal := c.build(key, loc)

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.cals[key]; ok {
			return existing, nil
		}
		c.cals[key] = cal
		c.byLoc[loc] = cal
		c.logger.Debug("calendar created", "zone", key, "size", len(c.cals))
		return cal, nil
	})

	//nolint:forcetypeassert // group only ever stores *Calendar
	return v.(*Calendar)
}

// Lookup returns the Calendar for the IANA time zone name, as understood by
// [time.LoadLocation]. The empty string and "UTC" resolve to UTC. Returns an
// error for unknown names.
func (c *Cache) Lookup(name string) (*Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalendar, err)
	}
	return c.Resolve(loc), nil
}

// Len returns the number of Calendars in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cals)
}

// Zones returns the sorted keys of the Calendars in the cache.
func (c *Cache) Zones() []string {
	c.mu.Lock()
	keys := maps.Keys(c.cals)
	c.mu.Unlock()

	slices.Sort(keys)
	return keys
}

func (c *Cache) byLocation(loc *time.Location) *Calendar {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byLoc[loc]
}

func (c *Cache) byKey(key string) *Calendar {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cals[key]
}

// zoneKey identifies loc by its name and its offsets in January and July, so
// that distinct fixed zones sharing a name get distinct keys while repeated
// loads of the same named zone share one.
func zoneKey(loc *time.Location) string {
	_, winter := time.Date(2000, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, summer := time.Date(2000, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return fmt.Sprintf("%s%+d%+d", loc.String(), winter, summer)
}
