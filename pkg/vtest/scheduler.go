package vtest

import (
	"sort"
	"sync"
	"time"

	"github.com/a11ylab/a11ydemo/pkg/announce"
)

// Scheduler is a manual clock implementing announce.Scheduler.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *Scheduler
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewScheduler returns a scheduler whose clock starts at a fixed instant.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// AfterFunc implements announce.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) announce.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTimer{s: s, at: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the current fake time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every timer that became
// due, in deadline order. Timers scheduled by callbacks are honoured when
// they fall inside the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		if next.at.After(s.now) {
			s.now = next.at
		}
		s.mu.Unlock()
		next.fn()
	}
}

// nextDue returns the earliest live timer due at or before target.
// Callers hold s.mu.
func (s *Scheduler) nextDue(target time.Time) *fakeTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at.Equal(s.timers[j].at) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].at.Before(s.timers[j].at)
	})
	if len(s.timers) == 0 || s.timers[0].at.After(target) {
		return nil
	}
	return s.timers[0]
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
