package scheduler

import (
	"slices"
	"testing"
	"time"
)

func TestSetTimer_FirstFireAfterInterval(t *testing.T) {
	s := New()
	var fired []time.Duration
	s.SetTimer("check", 3*time.Second, func(now time.Duration) { fired = append(fired, now) })

	steps := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 5 * time.Second, 6 * time.Second}
	for _, now := range steps {
		s.Advance(now)
	}

	want := []time.Duration{3 * time.Second, 6 * time.Second}
	if !slices.Equal(fired, want) {
		t.Errorf("fired at %v, want %v", fired, want)
	}
}

func TestAdvance_NoCatchUp(t *testing.T) {
	s := New()
	count := 0
	s.SetTimer("alert", 10*time.Second, func(time.Duration) { count++ })

	if n := s.Advance(time.Minute); n != 1 {
		t.Errorf("Advance returned %d, want 1", n)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	// Re-armed relative to the fire time.
	s.Advance(time.Minute + 9*time.Second)
	if count != 1 {
		t.Errorf("count = %d before next deadline, want 1", count)
	}
	s.Advance(time.Minute + 10*time.Second)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestAdvance_Order(t *testing.T) {
	s := New()
	var order []string
	s.SetTimer("b", 3*time.Second, func(time.Duration) { order = append(order, "b") })
	s.SetTimer("a", 2*time.Second, func(time.Duration) { order = append(order, "a") })
	s.SetTimer("c", 3*time.Second, func(time.Duration) { order = append(order, "c") })

	s.Advance(3 * time.Second)

	want := []string{"a", "b", "c"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRemoveTimer_FromCallback(t *testing.T) {
	s := New()
	var order []string
	s.SetTimer("first", time.Second, func(time.Duration) {
		order = append(order, "first")
		s.RemoveTimer("first")
		s.RemoveTimer("second")
	})
	s.SetTimer("second", time.Second, func(time.Duration) { order = append(order, "second") })

	s.Advance(time.Second)
	s.Advance(2 * time.Second)

	if !slices.Equal(order, []string{"first"}) {
		t.Errorf("order = %v, want [first]", order)
	}
	if names := s.Names(); len(names) != 0 {
		t.Errorf("Names = %v, want none", names)
	}
}

func TestSetTimer_Replace(t *testing.T) {
	s := New()
	var got string
	s.SetTimer("x", time.Second, func(time.Duration) { got = "old" })
	s.SetTimer("x", time.Second, func(time.Duration) { got = "new" })

	s.Advance(time.Second)
	if got != "new" {
		t.Errorf("got %q, want new", got)
	}
}

func TestSetTimer_Invalid(t *testing.T) {
	s := New()
	s.SetTimer("zero", 0, func(time.Duration) {})
	s.SetTimer("nil", time.Second, nil)
	if s.Has("zero") || s.Has("nil") {
		t.Error("invalid timers should not be armed")
	}
	if s.RemoveTimer("zero") {
		t.Error("RemoveTimer of unknown name should return false")
	}
}

func TestAdvance_Monotonic(t *testing.T) {
	s := New()
	s.Advance(5 * time.Second)
	s.Advance(2 * time.Second)
	if s.Now() != 5*time.Second {
		t.Errorf("Now = %v, want 5s", s.Now())
	}

	s.SetTimer("late", time.Second, func(time.Duration) {})
	s.Clear()
	if s.Has("late") {
		t.Error("Clear should disarm all timers")
	}
}
