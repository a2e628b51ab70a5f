package texture

import "testing"

func TestRoundRobinCursor(t *testing.T) {
	r := NewRoundRobin(0, 1, 2)

	if r.Current() != 0 {
		t.Fatalf("initial Current() = %d, want 0", r.Current())
	}

	// After k calls to Next, Current refers to slot k mod 3.
	for k := 1; k <= 7; k++ {
		got := r.Next()
		want := k % 3
		if got != want {
			t.Errorf("Next() call %d = %d, want %d", k, got, want)
		}
		if r.Current() != want {
			t.Errorf("Current() after %d calls = %d, want %d", k, r.Current(), want)
		}
	}
}

func TestRoundRobinPrevious(t *testing.T) {
	r := NewRoundRobin("a", "b", "c")

	before := r.Current()
	r.Next()
	if got := r.Previous(1); got != before {
		t.Errorf("Previous(1) after Next() = %q, want %q", got, before)
	}
	if got := r.Previous(0); got != r.Current() {
		t.Errorf("Previous(0) = %q, want Current() = %q", got, r.Current())
	}

	// Wraps past the start and beyond a full cycle.
	r2 := NewRoundRobin(10, 20, 30)
	if got := r2.Previous(1); got != 30 {
		t.Errorf("Previous(1) at cursor 0 = %d, want 30", got)
	}
	if got := r2.Previous(4); got != 30 {
		t.Errorf("Previous(4) = %d, want 30", got)
	}
}

func TestRoundRobinSingleSlot(t *testing.T) {
	r := NewRoundRobin(42)
	for i := 0; i < 3; i++ {
		if r.Next() != 42 || r.Current() != 42 || r.Previous(1) != 42 {
			t.Fatal("single-slot buffer must always return the same slot")
		}
	}
}

func TestRoundRobinEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRoundRobin() with no slots should panic")
		}
	}()
	NewRoundRobin[int]()
}
