package texture

// RoundRobin cycles through a fixed set of slots. Capacity is set at
// construction and never changes; the cursor only moves forward via Next.
// Temporal effects use it to address the last few frames without
// reallocating anything per tick.
type RoundRobin[T any] struct {
	slots  []T
	cursor int
}

// NewRoundRobin builds a buffer over the given slots. At least one slot is
// required; the cursor starts at slot 0.
func NewRoundRobin[T any](slots ...T) *RoundRobin[T] {
	if len(slots) == 0 {
		panic("texture: RoundRobin needs at least one slot")
	}
	return &RoundRobin[T]{slots: slots}
}

// Len returns the fixed slot count.
func (r *RoundRobin[T]) Len() int { return len(r.slots) }

// Current returns the slot under the cursor.
func (r *RoundRobin[T]) Current() T { return r.slots[r.cursor] }

// Previous returns the slot k steps behind the cursor, wrapping around.
// Previous(0) is Current.
func (r *RoundRobin[T]) Previous(k int) T {
	n := len(r.slots)
	idx := ((r.cursor-k)%n + n) % n
	return r.slots[idx]
}

// Next advances the cursor by one slot and returns the new current slot
// for writing. The slot it returns becomes Previous(1) after the following
// Next call.
func (r *RoundRobin[T]) Next() T {
	r.cursor = (r.cursor + 1) % len(r.slots)
	return r.slots[r.cursor]
}
