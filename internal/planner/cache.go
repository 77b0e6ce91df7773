package planner

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Base TTLs per view resolution. A fresh entry starts at half its base;
// frequently hit entries earn the full or doubled base on their next write.
const (
	dayViewTTL   = 2 * time.Minute
	weekViewTTL  = 5 * time.Minute
	monthViewTTL = 10 * time.Minute

	cacheCapacity = 1000
	// Eviction kicks in once the live entry count reaches this share of
	// capacity; the lowest-access fifth of entries is dropped.
	cachePressureRatio = 0.8
	cacheEvictRatio    = 0.2

	hotAccessThreshold  = 10
	warmAccessThreshold = 5
)

type cacheEntry struct {
	view        CalendarView
	expiry      time.Time
	accessCount int
}

// ViewCache memoizes computed calendar views per (user, view type, calendar
// day of the reference date). It is a pure accelerator: a miss or eviction
// costs recomputation only, the repository stays authoritative.
type ViewCache struct {
	mu       sync.Mutex
	entries  map[string]*cacheEntry
	location *time.Location
	now      func() time.Time
}

// NewViewCache builds an empty cache. Keys truncate reference dates to their
// calendar day in loc, matching the day-aligned view boundaries; nil falls
// back to UTC.
func NewViewCache(loc *time.Location) *ViewCache {
	if loc == nil {
		loc = time.UTC
	}
	return &ViewCache{
		entries:  make(map[string]*cacheEntry),
		location: loc,
		now:      time.Now,
	}
}

func (c *ViewCache) key(userID string, viewType ViewType, referenceDate time.Time) string {
	return fmt.Sprintf("%s|%s|%s", userID, viewType, referenceDate.In(c.location).Format("2006-01-02"))
}

func baseTTL(viewType ViewType) time.Duration {
	switch viewType {
	case ViewTypeWeek:
		return weekViewTTL
	case ViewTypeMonth:
		return monthViewTTL
	default:
		return dayViewTTL
	}
}

// Get returns the cached view for the key, or ok=false on a miss. A read
// against an expired entry is a miss and evicts the entry together with its
// access bookkeeping.
func (c *ViewCache) Get(userID string, viewType ViewType, referenceDate time.Time) (CalendarView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.key(userID, viewType, referenceDate)
	entry, ok := c.entries[key]
	if !ok {
		return CalendarView{}, false
	}
	if !c.now().Before(entry.expiry) {
		delete(c.entries, key)
		return CalendarView{}, false
	}
	entry.accessCount++
	return entry.view, true
}

// Set stores the view under the key. The entry's TTL is derived at write
// time from its historical access count: entries hit more than ten times get
// double the base TTL, five to ten get the base, everything else half.
func (c *ViewCache) Set(userID string, viewType ViewType, referenceDate time.Time, view CalendarView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= int(cacheCapacity*cachePressureRatio) {
		c.evictColdest()
	}

	key := c.key(userID, viewType, referenceDate)
	accessCount := 0
	if prev, ok := c.entries[key]; ok {
		accessCount = prev.accessCount
	}

	ttl := baseTTL(viewType)
	switch {
	case accessCount > hotAccessThreshold:
		ttl *= 2
	case accessCount >= warmAccessThreshold:
		// base TTL as-is
	default:
		ttl /= 2
	}

	c.entries[key] = &cacheEntry{
		view:        view,
		expiry:      c.now().Add(ttl),
		accessCount: accessCount,
	}
}

// evictColdest drops the least-accessed fifth of entries, at least one.
// Caller holds the lock.
func (c *ViewCache) evictColdest() {
	type keyed struct {
		key   string
		count int
	}
	ordered := make([]keyed, 0, len(c.entries))
	for k, e := range c.entries {
		ordered = append(ordered, keyed{k, e.accessCount})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].count < ordered[j].count
	})

	victims := int(float64(len(ordered)) * cacheEvictRatio)
	if victims < 1 {
		victims = 1
	}
	for _, v := range ordered[:victims] {
		delete(c.entries, v.key)
	}
}

// ClearUser removes every entry belonging to the user, regardless of view
// type or date. Called after any mutation of the user's blocks.
func (c *ViewCache) ClearUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := userID + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// ClearAll resets the cache to empty.
func (c *ViewCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len reports the live entry count.
func (c *ViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
