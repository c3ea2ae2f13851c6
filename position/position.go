// Package position implements the two-level cursor arithmetic used to address
// elements stored in fixed-capacity pages.
//
// A Position is a (page, offset) pair. Every function takes the page capacity
// explicitly so the arithmetic stays independent of any container or
// allocator. A capacity of zero or less is a caller bug and panics.
package position

import "fmt"

// Position addresses one slot: Offset is always in [0, capacity).
type Position struct {
	Page   int
	Offset int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Page, p.Offset)
}

func mustCapacity(capacity int) {
	if capacity <= 0 {
		panic(fmt.Sprintf("position: invalid page capacity %d", capacity))
	}
}

// StepRight returns the position immediately after p.
func StepRight(p Position, capacity int) Position {
	if p.Offset == capacity-1 {
		return Position{Page: p.Page + 1, Offset: 0}
	}
	return Position{Page: p.Page, Offset: p.Offset + 1}
}

// StepLeft returns the position immediately before p.
func StepLeft(p Position, capacity int) Position {
	if p.Offset == 0 {
		return Position{Page: p.Page - 1, Offset: capacity - 1}
	}
	return Position{Page: p.Page, Offset: p.Offset - 1}
}

// Advance moves p by delta slots in either direction, carrying or borrowing
// across page boundaries.
func Advance(p Position, delta int, capacity int) Position {
	mustCapacity(capacity)
	if delta >= 0 {
		sum := p.Offset + delta
		return Position{Page: p.Page + sum/capacity, Offset: sum % capacity}
	}
	back := -delta
	if back <= p.Offset {
		return Position{Page: p.Page, Offset: p.Offset - back}
	}
	// borrow whole pages, then settle the remainder on the last one
	over := back - p.Offset
	pages := (over + capacity - 1) / capacity
	return Position{Page: p.Page - pages, Offset: pages*capacity - over}
}

// Distance returns the number of slots from b to a, negative when a precedes b.
func Distance(a, b Position, capacity int) int {
	return capacity*(a.Page-b.Page) + a.Offset - b.Offset
}

// Compare orders positions by page, then by offset. It returns -1, 0 or +1.
func Compare(a, b Position) int {
	switch {
	case a.Page < b.Page:
		return -1
	case a.Page > b.Page:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// Less reports whether a comes strictly before b.
func Less(a, b Position) bool {
	return Compare(a, b) < 0
}

// Linear flattens p into a slot number counted from (0, 0).
func Linear(p Position, capacity int) int {
	return p.Page*capacity + p.Offset
}

// FromLinear is the inverse of Linear for non-negative slot numbers.
func FromLinear(i int, capacity int) Position {
	mustCapacity(capacity)
	return Position{Page: i / capacity, Offset: i % capacity}
}
