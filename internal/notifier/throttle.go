package notifier

import (
	"sync"
	"time"
)

// Throttle rate-limits outbound alerts with a per-symbol-and-kind
// cooldown plus a global daily cap. Repeated scans of an unchanged
// market would otherwise re-alert every cycle.
type Throttle struct {
	mu        sync.Mutex
	cooldown  time.Duration
	maxPerDay int

	lastSent map[string]time.Time
	day      string
	sent     int
}

// NewThrottle builds a throttle. A non-positive maxPerDay disables the
// daily cap.
func NewThrottle(cooldown time.Duration, maxPerDay int) *Throttle {
	return &Throttle{
		cooldown:  cooldown,
		maxPerDay: maxPerDay,
		lastSent:  make(map[string]time.Time),
	}
}

// Allow reports whether an alert of the given kind for the symbol may go
// out at the given time, and records the send when it may. Kind is the
// signal name or a label like "trailing_stop".
func (t *Throttle) Allow(symbol, kind string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	day := now.Format("2006-01-02")
	if day != t.day {
		t.day = day
		t.sent = 0
	}
	if t.maxPerDay > 0 && t.sent >= t.maxPerDay {
		return false
	}

	key := symbol + "|" + kind
	if last, ok := t.lastSent[key]; ok && now.Sub(last) < t.cooldown {
		return false
	}

	t.lastSent[key] = now
	t.sent++
	return true
}
