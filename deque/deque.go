// Package deque implements a paged double-ended queue.
//
// Elements live in fixed-capacity pages referenced from a page table. A
// logical index is translated into a (page, offset) position with the
// arithmetic in the position package, so indexed access is O(1) and pushes
// at either end are amortized O(1). When a push reaches the first or last
// page, the table is either recentered (if at most half of it is in use) or
// doubled, with the live elements moved into the middle of the new table.
//
// All element storage and element lifetimes go through an alloc.Allocator.
// Every mutating operation is all-or-nothing: when an allocation or an
// element construction fails, the error is returned and the deque holds
// exactly the elements it held before the call.
//
// The zero value is an empty deque using DefaultConfig and the default
// allocator. A Deque is not safe for concurrent use.
package deque

import (
	"fmt"
	"iter"

	"github.com/fission-codes/go-deque/alloc"
	dqerrors "github.com/fission-codes/go-deque/errors"
	"github.com/fission-codes/go-deque/iterator"
	"github.com/fission-codes/go-deque/position"
	"github.com/fission-codes/go-deque/stats"
	"github.com/fission-codes/go-deque/util"
	"go.uber.org/zap"
)

// Deque is a double-ended queue stored in pages.
//
// The occupied range is the half-open interval [start, end): end is the slot
// a PushBack would fill, so an empty deque has start == end.
type Deque[T any] struct {
	alloc    alloc.Allocator[T]
	pages    [][]T
	capacity int
	start    position.Position
	end      position.Position
	gen      uint64
	config   Config
	log      *zap.SugaredLogger
	stats    stats.Stats
}

func newDeque[T any](cfg Config, a alloc.Allocator[T]) (*Deque[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if a == nil {
		a = alloc.NewDefault[T]()
	}
	return &Deque[T]{
		alloc:    a,
		capacity: cfg.PageCapacity,
		config:   cfg,
		log:      cfg.logger(),
		stats:    cfg.stats(),
	}, nil
}

// New returns an empty deque with the default configuration and allocator.
func New[T any]() *Deque[T] {
	d, err := NewWithConfig[T](DefaultConfig(), nil)
	if err != nil {
		// the default allocator cannot fail
		panic(err)
	}
	return d
}

// NewWithAllocator returns an empty deque that takes its storage from a.
func NewWithAllocator[T any](a alloc.Allocator[T]) (*Deque[T], error) {
	return NewWithConfig(DefaultConfig(), a)
}

// NewWithConfig returns an empty deque with the given layout. A nil
// allocator selects the default one.
func NewWithConfig[T any](cfg Config, a alloc.Allocator[T]) (*Deque[T], error) {
	d, err := newDeque(cfg, a)
	if err != nil {
		return nil, err
	}
	if err := d.init(cfg.PageCount); err != nil {
		return nil, err
	}
	return d, nil
}

// build creates a deque holding count elements made by ctor. The table is
// sized so the elements fill at most a quarter of it.
func build[T any](cfg Config, a alloc.Allocator[T], count int, ctor func(i int) alloc.Constructor[T]) (*Deque[T], error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", dqerrors.ErrInvalidConfig, count)
	}
	d, err := newDeque(cfg, a)
	if err != nil {
		return nil, err
	}
	pageCount := cfg.PageCount
	if count > 0 {
		needed := util.NextPowerOfTwo(uint64(util.CeilDiv(4*count, cfg.PageCapacity)))
		pageCount = util.Max(pageCount, int(needed))
	}
	if err := d.init(pageCount); err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		if err := d.EmplaceBack(ctor(i)); err != nil {
			d.Clear()
			return nil, err
		}
	}
	return d, nil
}

// NewSized returns a deque holding count zero values.
func NewSized[T any](cfg Config, count int, a alloc.Allocator[T]) (*Deque[T], error) {
	return build(cfg, a, count, func(int) alloc.Constructor[T] { return alloc.Zero[T]() })
}

// NewFilled returns a deque holding count copies of value.
func NewFilled[T any](cfg Config, count int, value T, a alloc.Allocator[T]) (*Deque[T], error) {
	return build(cfg, a, count, func(int) alloc.Constructor[T] { return alloc.Value(value) })
}

// FromSlice returns a deque holding the elements of values in order.
func FromSlice[T any](cfg Config, values []T, a alloc.Allocator[T]) (*Deque[T], error) {
	return build(cfg, a, len(values), func(i int) alloc.Constructor[T] { return alloc.Value(values[i]) })
}

// FromIterator drains it into a new deque.
func FromIterator[T any](cfg Config, it iterator.Iterator[T], a alloc.Allocator[T]) (*Deque[T], error) {
	d, err := NewWithConfig(cfg, a)
	if err != nil {
		return nil, err
	}
	err = iterator.Drain(it, func(item *T) error {
		return d.PushBack(*item)
	})
	if err != nil {
		d.Clear()
		return nil, err
	}
	return d, nil
}

// Collect gathers the values of seq into a new deque with the default
// configuration and allocator.
func Collect[T any](seq iter.Seq[T]) *Deque[T] {
	d := New[T]()
	for v := range seq {
		// the default allocator cannot fail
		_ = d.PushBack(v)
	}
	return d
}

func (d *Deque[T]) event(name string) {
	if d.stats != nil {
		d.stats.Log(name)
	}
}

func (d *Deque[T]) slot(p position.Position) *T {
	return &d.pages[p.Page][p.Offset]
}

func (d *Deque[T]) pos(i int) position.Position {
	return position.Advance(d.start, i, d.capacity)
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return position.Distance(d.end, d.start, d.capacity)
}

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.Len() == 0
}

// PageCount returns the number of pages currently allocated. It is zero for a
// cleared deque.
func (d *Deque[T]) PageCount() int {
	return len(d.pages)
}

// PageCapacity returns the number of element slots per page.
func (d *Deque[T]) PageCapacity() int {
	d.setup()
	return d.capacity
}

// Allocator returns the allocator bound to the deque.
func (d *Deque[T]) Allocator() alloc.Allocator[T] {
	d.setup()
	return d.alloc
}

// Index returns the i-th element. i must be in [0, Len()).
func (d *Deque[T]) Index(i int) T {
	return *d.Ptr(i)
}

// Ptr returns a pointer to the i-th element. i must be in [0, Len()). The
// pointer is invalidated when the page table is reallocated.
func (d *Deque[T]) Ptr(i int) *T {
	return d.slot(d.pos(i))
}

func (d *Deque[T]) checkIndex(i int) error {
	if i < 0 || i >= d.Len() {
		return fmt.Errorf("%w: index %d with length %d", dqerrors.ErrOutOfRange, i, d.Len())
	}
	return nil
}

// At returns the i-th element, or ErrOutOfRange.
func (d *Deque[T]) At(i int) (T, error) {
	if err := d.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return d.Index(i), nil
}

// Set replaces the i-th element, or returns ErrOutOfRange.
func (d *Deque[T]) Set(i int, v T) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	*d.Ptr(i) = v
	return nil
}

// Front returns the first element. The deque must not be empty.
func (d *Deque[T]) Front() T {
	return d.Index(0)
}

// Back returns the last element. The deque must not be empty.
func (d *Deque[T]) Back() T {
	return d.Index(d.Len() - 1)
}

// EmplaceBack constructs a new last element with ctor.
func (d *Deque[T]) EmplaceBack(ctor alloc.Constructor[T]) error {
	if err := d.makeRoomBack(); err != nil {
		return err
	}
	if err := d.alloc.Construct(d.slot(d.end), ctor); err != nil {
		return fmt.Errorf("%w: %w", dqerrors.ErrConstructionFailure, err)
	}
	d.end = position.StepRight(d.end, d.capacity)
	return nil
}

// EmplaceFront constructs a new first element with ctor.
func (d *Deque[T]) EmplaceFront(ctor alloc.Constructor[T]) error {
	if err := d.makeRoomFront(); err != nil {
		return err
	}
	target := position.StepLeft(d.start, d.capacity)
	if err := d.alloc.Construct(d.slot(target), ctor); err != nil {
		return fmt.Errorf("%w: %w", dqerrors.ErrConstructionFailure, err)
	}
	d.start = target
	return nil
}

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) error {
	return d.EmplaceBack(alloc.Value(v))
}

// PushFront prepends v.
func (d *Deque[T]) PushFront(v T) error {
	return d.EmplaceFront(alloc.Value(v))
}

// PopBack removes and returns the last element. It panics on an empty deque.
func (d *Deque[T]) PopBack() T {
	if d.Empty() {
		panic("deque: PopBack called on empty deque")
	}
	last := position.StepLeft(d.end, d.capacity)
	slot := d.slot(last)
	v := *slot
	d.alloc.Destroy(slot)
	d.end = last
	return v
}

// PopFront removes and returns the first element. It panics on an empty deque.
func (d *Deque[T]) PopFront() T {
	if d.Empty() {
		panic("deque: PopFront called on empty deque")
	}
	slot := d.slot(d.start)
	v := *slot
	d.alloc.Destroy(slot)
	d.start = position.StepRight(d.start, d.capacity)
	return v
}

// Clone returns a deep copy of d built with the allocator chosen by
// alloc.SelectOnCopy.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	return d.CloneFunc(nil)
}

// CloneFunc is like Clone but copies every element with fn.
func (d *Deque[T]) CloneFunc(fn func(T) (T, error)) (*Deque[T], error) {
	d.setup()
	c, err := newDeque(d.config, alloc.SelectOnCopy(d.alloc))
	if err != nil {
		return nil, err
	}
	c.log = d.log
	if len(d.pages) == 0 {
		return c, nil
	}
	pages, err := c.reservePages(len(d.pages))
	if err != nil {
		return nil, err
	}
	c.pages = pages
	c.start = d.start
	c.end = d.start
	c.gen = nextGeneration()
	for p := d.start; p != d.end; p = position.StepRight(p, d.capacity) {
		if err := c.alloc.Construct(c.slot(c.end), alloc.Copy(*d.slot(p), fn)); err != nil {
			copied := c.Len()
			c.Clear()
			return nil, fmt.Errorf("%w: copying element %d: %w", dqerrors.ErrConstructionFailure, copied, err)
		}
		c.end = position.StepRight(c.end, c.capacity)
	}
	return c, nil
}

// Assign replaces the contents of d with a deep copy of other. If copying
// fails d is unchanged.
func (d *Deque[T]) Assign(other *Deque[T]) error {
	if d == other {
		return nil
	}
	c, err := other.Clone()
	if err != nil {
		return err
	}
	d.Swap(c)
	c.Clear()
	return nil
}

// Swap exchanges the contents, allocators and layouts of d and other in
// O(1). Iterators of both deques are invalidated.
func (d *Deque[T]) Swap(other *Deque[T]) {
	*d, *other = *other, *d
	d.gen = nextGeneration()
	other.gen = nextGeneration()
}

// Take moves the contents of d into a new deque in O(1) and leaves d as a
// zero deque.
func (d *Deque[T]) Take() *Deque[T] {
	moved := &Deque[T]{}
	moved.Swap(d)
	return moved
}
