// Package clock renders wall-clock time and calendar dates in the
// calculator's fixed timezone.
package clock

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // the zone must resolve on hosts without a zoneinfo database
)

// Zone is the IANA name of the timezone every pane works in.
const Zone = "Asia/Kolkata"

const layout = "02-01-2006 03:04:05 PM MST"

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New loads Zone. now defaults to time.Now when nil.
func New(now func() time.Time) (*Clock, error) {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		return nil, fmt.Errorf("load location %s: %w", Zone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{loc: loc, now: now}, nil
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Format renders t as dd-mm-yyyy hh:mm:ss AM IST.
func (c *Clock) Format(t time.Time) string {
	return t.In(c.loc).Format(layout)
}

// Today is the current calendar date in the clock's zone, at midnight UTC so
// that date arithmetic on it never crosses a zone transition.
func (c *Clock) Today() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tick calls fn with the current time every interval until ctx is done.
func (c *Clock) Tick(ctx context.Context, interval time.Duration, fn func(time.Time)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(c.Now())
		}
	}
}
