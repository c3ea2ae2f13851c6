package deque

import (
	"github.com/fission-codes/go-deque/position"
)

// Iterator is a random-access cursor into a Deque.
//
// Iterators are values: it = it.Next() advances one. They are invalidated
// when the page table is reallocated (a push that recenters or grows it,
// Clear, Swap) and when the element they address is erased. Valid reports
// the first kind of invalidation; dereferencing an invalid iterator is a
// caller bug.
type Iterator[T any] struct {
	d   *Deque[T]
	pos position.Position
	gen uint64
}

func (d *Deque[T]) iter(p position.Position) Iterator[T] {
	return Iterator[T]{d: d, pos: p, gen: d.gen}
}

// Begin returns an iterator to the first element.
func (d *Deque[T]) Begin() Iterator[T] {
	d.setup()
	return d.iter(d.start)
}

// End returns an iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] {
	d.setup()
	return d.iter(d.end)
}

// IteratorAt returns an iterator to the i-th element; i may equal Len().
func (d *Deque[T]) IteratorAt(i int) Iterator[T] {
	d.setup()
	return d.iter(d.pos(i))
}

// Get returns the element the iterator addresses.
func (it Iterator[T]) Get() T {
	return *it.Ptr()
}

// Ptr returns a pointer to the element the iterator addresses.
func (it Iterator[T]) Ptr() *T {
	return it.d.slot(it.pos)
}

// Set overwrites the element the iterator addresses.
func (it Iterator[T]) Set(v T) {
	*it.Ptr() = v
}

// Next returns an iterator to the following element.
func (it Iterator[T]) Next() Iterator[T] {
	it.pos = position.StepRight(it.pos, it.d.capacity)
	return it
}

// Prev returns an iterator to the preceding element.
func (it Iterator[T]) Prev() Iterator[T] {
	it.pos = position.StepLeft(it.pos, it.d.capacity)
	return it
}

// Add returns an iterator k elements further; k may be negative.
func (it Iterator[T]) Add(k int) Iterator[T] {
	it.pos = position.Advance(it.pos, k, it.d.capacity)
	return it
}

// Sub returns an iterator k elements back.
func (it Iterator[T]) Sub(k int) Iterator[T] {
	return it.Add(-k)
}

// Distance returns the number of Next steps from other to it.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return position.Distance(it.pos, other.pos, it.d.capacity)
}

// Compare orders two iterators of the same deque by position.
func (it Iterator[T]) Compare(other Iterator[T]) int {
	return position.Compare(it.pos, other.pos)
}

func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.Compare(other) < 0
}

func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.d == other.d && it.pos == other.pos
}

// Index returns the logical index of the iterator, Len() for End().
func (it Iterator[T]) Index() int {
	return position.Distance(it.pos, it.d.start, it.d.capacity)
}

// Valid reports whether the iterator still belongs to the deque's current
// page table and lies within [Begin(), End()].
func (it Iterator[T]) Valid() bool {
	if it.d == nil || it.gen != it.d.gen {
		return false
	}
	i := it.Index()
	return i >= 0 && i <= it.d.Len()
}

// Const returns a read-only view of the iterator.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: it}
}

// ConstIterator is an Iterator that cannot modify the deque.
type ConstIterator[T any] struct {
	it Iterator[T]
}

// CBegin returns a read-only iterator to the first element.
func (d *Deque[T]) CBegin() ConstIterator[T] {
	return d.Begin().Const()
}

// CEnd returns a read-only iterator one past the last element.
func (d *Deque[T]) CEnd() ConstIterator[T] {
	return d.End().Const()
}

func (c ConstIterator[T]) Get() T                 { return c.it.Get() }
func (c ConstIterator[T]) Next() ConstIterator[T] { return ConstIterator[T]{c.it.Next()} }
func (c ConstIterator[T]) Prev() ConstIterator[T] { return ConstIterator[T]{c.it.Prev()} }

func (c ConstIterator[T]) Add(k int) ConstIterator[T] { return ConstIterator[T]{c.it.Add(k)} }
func (c ConstIterator[T]) Sub(k int) ConstIterator[T] { return ConstIterator[T]{c.it.Sub(k)} }

func (c ConstIterator[T]) Distance(other ConstIterator[T]) int { return c.it.Distance(other.it) }
func (c ConstIterator[T]) Compare(other ConstIterator[T]) int  { return c.it.Compare(other.it) }
func (c ConstIterator[T]) Less(other ConstIterator[T]) bool    { return c.it.Less(other.it) }
func (c ConstIterator[T]) Equal(other ConstIterator[T]) bool   { return c.it.Equal(other.it) }

func (c ConstIterator[T]) Index() int  { return c.it.Index() }
func (c ConstIterator[T]) Valid() bool { return c.it.Valid() }

// ReverseIterator walks a deque from back to front. Like its standard
// library counterpart it wraps a base iterator one past the element it
// addresses.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// RBegin returns a reverse iterator to the last element.
func (d *Deque[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.End()}
}

// REnd returns a reverse iterator one before the first element.
func (d *Deque[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.Begin()}
}

// Base returns the underlying forward iterator.
func (r ReverseIterator[T]) Base() Iterator[T] { return r.base }

func (r ReverseIterator[T]) Get() T      { return r.base.Prev().Get() }
func (r ReverseIterator[T]) Ptr() *T     { return r.base.Prev().Ptr() }
func (r ReverseIterator[T]) Set(v T)     { r.base.Prev().Set(v) }
func (r ReverseIterator[T]) Valid() bool { return r.base.Valid() }

func (r ReverseIterator[T]) Next() ReverseIterator[T]     { return ReverseIterator[T]{r.base.Prev()} }
func (r ReverseIterator[T]) Prev() ReverseIterator[T]     { return ReverseIterator[T]{r.base.Next()} }
func (r ReverseIterator[T]) Add(k int) ReverseIterator[T] { return ReverseIterator[T]{r.base.Sub(k)} }
func (r ReverseIterator[T]) Sub(k int) ReverseIterator[T] { return ReverseIterator[T]{r.base.Add(k)} }

// Distance returns the number of Next steps from other to r.
func (r ReverseIterator[T]) Distance(other ReverseIterator[T]) int {
	return other.base.Distance(r.base)
}

func (r ReverseIterator[T]) Compare(other ReverseIterator[T]) int {
	return other.base.Compare(r.base)
}

func (r ReverseIterator[T]) Less(other ReverseIterator[T]) bool  { return r.Compare(other) < 0 }
func (r ReverseIterator[T]) Equal(other ReverseIterator[T]) bool { return r.base.Equal(other.base) }

// ConstReverseIterator is a read-only ReverseIterator.
type ConstReverseIterator[T any] struct {
	r ReverseIterator[T]
}

// CRBegin returns a read-only reverse iterator to the last element.
func (d *Deque[T]) CRBegin() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.RBegin()}
}

// CREnd returns a read-only reverse iterator one before the first element.
func (d *Deque[T]) CREnd() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{d.REnd()}
}

func (c ConstReverseIterator[T]) Get() T      { return c.r.Get() }
func (c ConstReverseIterator[T]) Valid() bool { return c.r.Valid() }

func (c ConstReverseIterator[T]) Base() ConstIterator[T] { return c.r.base.Const() }

func (c ConstReverseIterator[T]) Next() ConstReverseIterator[T] { return ConstReverseIterator[T]{c.r.Next()} }
func (c ConstReverseIterator[T]) Prev() ConstReverseIterator[T] { return ConstReverseIterator[T]{c.r.Prev()} }

func (c ConstReverseIterator[T]) Add(k int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Add(k)}
}

func (c ConstReverseIterator[T]) Sub(k int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{c.r.Sub(k)}
}

func (c ConstReverseIterator[T]) Distance(other ConstReverseIterator[T]) int {
	return c.r.Distance(other.r)
}

func (c ConstReverseIterator[T]) Compare(other ConstReverseIterator[T]) int {
	return c.r.Compare(other.r)
}

func (c ConstReverseIterator[T]) Less(other ConstReverseIterator[T]) bool {
	return c.r.Less(other.r)
}

func (c ConstReverseIterator[T]) Equal(other ConstReverseIterator[T]) bool {
	return c.r.Equal(other.r)
}
