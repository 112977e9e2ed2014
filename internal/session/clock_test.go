package session

import (
	"sort"
	"testing"
	"time"
)

// logicalClock plays the role of the UI runtime in tests: it applies events,
// performs ScheduleRevert effects on a virtual timeline and records the rest.
type logicalClock struct {
	now      time.Time
	pending  []ScheduleRevert
	effects  []Effect
	reverted []CopyReverted
}

func newLogicalClock() *logicalClock {
	return &logicalClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *logicalClock) apply(t *testing.T, s State, ev Event) State {
	t.Helper()
	next, effects := Reduce(s, ev)
	for _, effect := range effects {
		if revert, ok := effect.(ScheduleRevert); ok {
			c.pending = append(c.pending, revert)
			continue
		}
		c.effects = append(c.effects, effect)
	}
	return next
}

// advance moves the clock forward by d, delivering every revert that comes due
// in timestamp order.
func (c *logicalClock) advance(t *testing.T, s State, d time.Duration) State {
	t.Helper()
	target := c.now.Add(d)
	for {
		sort.SliceStable(c.pending, func(i, j int) bool { return c.pending[i].At.Before(c.pending[j].At) })
		if len(c.pending) == 0 || c.pending[0].At.After(target) {
			break
		}
		due := c.pending[0]
		c.pending = c.pending[1:]
		c.now = due.At
		ev := CopyReverted{Artifact: due.Artifact, Token: due.Token}
		c.reverted = append(c.reverted, ev)
		s = c.apply(t, s, ev)
	}
	c.now = target
	return s
}

func (c *logicalClock) copied(t *testing.T, s State, artifact Artifact) State {
	t.Helper()
	return c.apply(t, s, CopySucceeded{Artifact: artifact, At: c.now})
}
