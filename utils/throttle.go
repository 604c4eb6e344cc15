package utils

import (
	"context"
	"math/rand/v2"
	"time"
)

// Throttle pauses between page requests for a random whole number of units
// in [Min, Max], so the listing site does not see a steady request rhythm.
type Throttle struct {
	Min  int
	Max  int
	Unit time.Duration

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
	rand  func(n int) int
}

// NewThrottle creates a Throttle sleeping between minUnits and maxUnits of unit.
func NewThrottle(minUnits, maxUnits int, unit time.Duration) *Throttle {
	if maxUnits < minUnits {
		maxUnits = minUnits
	}
	return &Throttle{
		Min:   minUnits,
		Max:   maxUnits,
		Unit:  unit,
		sleep: sleepContext,
		rand:  rand.IntN,
	}
}

// Next picks the next delay.
func (t *Throttle) Next() time.Duration {
	if t.Max <= 0 {
		return 0
	}
	n := t.Min + t.rand(t.Max-t.Min+1)
	return time.Duration(n) * t.Unit
}

// Wait sleeps for the next delay or until ctx is done.
func (t *Throttle) Wait(ctx context.Context) (time.Duration, error) {
	d := t.Next()
	if d <= 0 {
		return 0, nil
	}
	return d, t.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// URLSet is a set of URLs that remembers insertion order.
type URLSet struct {
	seen  map[string]struct{}
	order []string
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	s.order = append(s.order, url)
	return true
}

// List returns the URLs in the order they were first added.
func (s *URLSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
