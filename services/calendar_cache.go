package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CalendarCache keeps a room's disabled-dates payload in Redis so the date
// picker on a busy hotel page does not rebuild it from the bookings table on
// every render. The cache is optional: a nil client degrades to always-miss,
// and entries are invalidated whenever a booking for the room is confirmed.
type CalendarCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewCalendarCache(rdb *redis.Client, ttl time.Duration) *CalendarCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CalendarCache{RDB: rdb, TTL: ttl}
}

func calendarKey(roomID uint) string {
	return fmt.Sprintf("room:%d:disabled-dates", roomID)
}

// Get returns the cached disabled dates for a room, or (nil, false) on miss.
func (c *CalendarCache) Get(ctx context.Context, roomID uint) ([]time.Time, bool) {
	if c == nil || c.RDB == nil {
		return nil, false
	}
	raw, err := c.RDB.Get(ctx, calendarKey(roomID)).Bytes()
	if err != nil {
		return nil, false
	}
	var days []time.Time
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

// Set stores the disabled dates for a room. Failures are swallowed: the cache
// is an accelerator, never a source of truth.
func (c *CalendarCache) Set(ctx context.Context, roomID uint, days []time.Time) {
	if c == nil || c.RDB == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	c.RDB.Set(ctx, calendarKey(roomID), raw, c.TTL)
}

// Invalidate drops a room's cached calendar, called after a booking for the
// room is confirmed so newly blocked days become visible immediately.
func (c *CalendarCache) Invalidate(ctx context.Context, roomID uint) {
	if c == nil || c.RDB == nil {
		return
	}
	c.RDB.Del(ctx, calendarKey(roomID))
}
