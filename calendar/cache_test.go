package calendar

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCacheResolve(t *testing.T) {
	t.Parallel()

	for _, tc := range zoneTestCases() {
		t.Run(tc.test, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			cache := New()
			a.Zero(cache.Len())
			cal := cache.Resolve(tc.loc)
			a.NotNil(cal)
			a.Equal(tc.loc, cal.Location())
			a.Equal(1, cache.Len())
			a.Same(cal, cache.Resolve(tc.loc))
			a.Equal([]string{cal.Key()}, cache.Zones())
		})
	}
}

func TestCacheResolveNil(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	cache := New()
	cal := cache.Resolve(nil)
	a.Equal(time.UTC, cal.Location())
	a.Same(cal, cache.Resolve(time.UTC))
	a.Equal([]string{"UTC+0+0"}, cache.Zones())
}

func TestCacheKeys(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	cache := New()
	// Separate loads of one zone share an entry.
	ny := cache.Resolve(loadTZ("America/New_York"))
	a.Same(ny, cache.Resolve(loadTZ("America/New_York")))
	a.Equal("America/New_York-18000-14400", ny.Key())

	// Fixed zones with the same name but different offsets do not.
	plus := cache.Resolve(time.FixedZone("", secondsPerHour))
	minus := cache.Resolve(time.FixedZone("", -secondsPerHour))
	a.NotSame(plus, minus)
	a.Equal("+3600+3600", plus.Key())
	a.Equal("-3600-3600", minus.Key())

	a.Equal([]string{
		"+3600+3600",
		"-3600-3600",
		"America/New_York-18000-14400",
	}, cache.Zones())
}

func TestCacheLookup(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	cache := New()
	cal, err := cache.Lookup("Asia/Tokyo")
	r.NoError(err)
	a.Equal("Asia/Tokyo", cal.Location().String())
	again, err := cache.Lookup("Asia/Tokyo")
	r.NoError(err)
	a.Same(cal, again)

	utc, err := cache.Lookup("")
	r.NoError(err)
	a.Same(utc, cache.Resolve(time.UTC))

	cal, err = cache.Lookup("Nowhere/Special")
	r.Error(err)
	r.ErrorIs(err, ErrCalendar)
	a.Nil(cal)
	a.Equal(2, cache.Len())
}

func TestCacheConcurrentResolve(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	const workers = 64
	cache := New()
	fields := Fields{2016, 3, 5, 14, 9, 7}
	exp := time.Date(2016, 3, 5, 14, 9, 7, 0, loadTZ("Asia/Tokyo"))

	var (
		mu   sync.Mutex
		seen = map[*Calendar]int{}
	)
	start := make(chan struct{})
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			<-start
			cal := cache.Resolve(loadTZ("Asia/Tokyo"))
			ts, err := cal.Compose(fields)
			if err != nil {
				return err
			}
			if !ts.Equal(exp) || cal.Decompose(ts) != fields {
				t.Errorf("unexpected composition %v", ts)
			}
			mu.Lock()
			seen[cal]++
			mu.Unlock()
			return nil
		})
	}
	close(start)
	r.NoError(g.Wait())

	a.Len(seen, 1)
	a.Equal(1, cache.Len())
}

func TestCacheConcurrentDistinctZones(t *testing.T) {
	t.Parallel()

	cache := New()
	zones := zoneTestCases()
	var g errgroup.Group
	for range 8 {
		for _, tc := range zones {
			g.Go(func() error {
				cache.Resolve(tc.loc)
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())

	// Loading "" returns time.UTC, so "UTC" and "empty" share an entry.
	assert.Equal(t, len(zones)-1, cache.Len())
}

func TestCacheLogger(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cache := New(WithLogger(logger))
	cache.Resolve(time.UTC)
	cache.Resolve(time.UTC)

	a.Equal(1, bytes.Count(buf.Bytes(), []byte("calendar created")))
	a.Contains(buf.String(), "zone=UTC+0+0")
	a.Contains(buf.String(), "size=1")

	// A nil logger keeps the default.
	a.NotNil(New(WithLogger(nil)).logger)
}

func TestCacheConcurrentMissBuildsOnce(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	const workers = 32
	cache := New()
	var builds atomic.Int32
	release := make(chan struct{})
	cache.build = func(key string, loc *time.Location) *Calendar {
		builds.Add(1)
		<-release
		return newCalendar(key, loc)
	}

	tokyo := loadTZ("Asia/Tokyo")
	results := make([]*Calendar, workers)
	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			results[i] = cache.Resolve(tokyo)
			return nil
		})
	}

	// Hold the first construction open while the others miss and wait on it.
	time.Sleep(100 * time.Millisecond)
	close(release)
	r.NoError(g.Wait())

	a.Equal(int32(1), builds.Load())
	a.Equal(1, cache.Len())
	for _, cal := range results {
		a.Same(results[0], cal)
	}
}

func TestCacheLocationHits(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	cache := New()
	var builds atomic.Int32
	cache.build = func(key string, loc *time.Location) *Calendar {
		builds.Add(1)
		return newCalendar(key, loc)
	}

	ny := loadTZ("America/New_York")
	cal := cache.Resolve(ny)
	a.Same(cal, cache.Resolve(ny))
	a.Same(cal, cache.Resolve(cal.Location()))

	// Another load of the zone shares the Calendar by key without being
	// remembered by pointer.
	a.Same(cal, cache.Resolve(loadTZ("America/New_York")))
	a.Equal(int32(1), builds.Load())
	a.Len(cache.byLoc, 1)
	a.Same(cal, cache.byLoc[ny])
}
