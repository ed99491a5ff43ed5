// Package scheduler runs named repeating timers against simulation time.
//
// Timers do not use the wall clock. The owner advances the scheduler with the
// current simulation time and every due timer fires on that call. A timer first
// fires one interval after it was set and is then re-armed one interval after the
// time it fired; missed intervals are not replayed.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Func is a timer callback. It receives the simulation time it fired at.
type Func func(now time.Duration)

type timer struct {
	name  string
	every time.Duration
	next  time.Duration
	fn    Func
	seq   int
}

// Scheduler holds named timers. It is safe for concurrent use; callbacks run
// without the lock held, so they may set or remove timers.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers map[string]*timer
	seq    int
}

// New creates a scheduler at simulation time zero.
func New() *Scheduler {
	return &Scheduler{timers: make(map[string]*timer)}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// SetTimer arms a repeating timer. Setting an existing name replaces it.
// Non-positive intervals are ignored.
func (s *Scheduler) SetTimer(name string, every time.Duration, fn Func) {
	if every <= 0 || fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.timers[name] = &timer{name: name, every: every, next: s.now + every, fn: fn, seq: s.seq}
}

// RemoveTimer disarms a timer. It returns false if no timer had that name.
func (s *Scheduler) RemoveTimer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[name]; !ok {
		return false
	}
	delete(s.timers, name)
	return true
}

// Has returns true if a timer with the name is armed.
func (s *Scheduler) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[name]
	return ok
}

// Names returns the armed timer names, sorted.
func (s *Scheduler) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.timers))
	for name := range s.timers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear disarms every timer.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = make(map[string]*timer)
}

// Advance moves the scheduler to now and fires every due timer, earliest
// deadline first; ties fire in the order the timers were set. Each timer fires
// at most once per call. It returns the number of callbacks run. Time never
// moves backwards.
func (s *Scheduler) Advance(now time.Duration) int {
	s.mu.Lock()
	if now > s.now {
		s.now = now
	}
	now = s.now
	var due []*timer
	for _, t := range s.timers {
		if t.next <= now {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].seq < due[j].seq
	})

	fired := 0
	for _, t := range due {
		// A callback earlier in this pass may have removed or replaced it.
		s.mu.Lock()
		current, ok := s.timers[t.name]
		if !ok || current != t {
			s.mu.Unlock()
			continue
		}
		t.next = now + t.every
		s.mu.Unlock()

		t.fn(now)
		fired++
	}
	return fired
}
