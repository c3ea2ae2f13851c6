package deque

import (
	"fmt"

	"github.com/fission-codes/go-deque/alloc"
	dqerrors "github.com/fission-codes/go-deque/errors"
	"github.com/fission-codes/go-deque/position"
	"go.uber.org/atomic"
)

// generations hands out iterator generations. Values are unique across all
// deques so an iterator can never match a table it was not derived from.
var generations = atomic.NewUint64(0)

func nextGeneration() uint64 {
	return generations.Inc()
}

// reservePages allocates n pages of exactly d.capacity slots. If any page
// fails, the pages already obtained in this batch are released before the
// error is returned.
func (d *Deque[T]) reservePages(n int) ([][]T, error) {
	pages := make([][]T, 0, n)
	for i := 0; i < n; i++ {
		page, err := d.alloc.Allocate(d.capacity)
		if err == nil && len(page) != d.capacity {
			d.alloc.Deallocate(page)
			err = fmt.Errorf("allocator returned %d slots, want %d", len(page), d.capacity)
		}
		if err != nil {
			d.releasePages(pages)
			d.event("Reserve.Failed")
			return nil, fmt.Errorf("%w: page %d of %d: %w", dqerrors.ErrAllocationFailure, i+1, n, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (d *Deque[T]) releasePages(pages [][]T) {
	for _, page := range pages {
		d.alloc.Deallocate(page)
	}
}

// setup fills in the defaults of a zero Deque. It never allocates.
func (d *Deque[T]) setup() {
	if d.capacity == 0 {
		cfg := DefaultConfig()
		d.config = cfg
		d.capacity = cfg.PageCapacity
		d.log = cfg.logger()
		d.stats = cfg.stats()
	}
	if d.alloc == nil {
		d.alloc = alloc.NewDefault[T]()
	}
}

// init allocates a fresh table of pageCount pages with the cursors in the
// middle of it. The deque must hold no live elements.
func (d *Deque[T]) init(pageCount int) error {
	d.setup()
	pages, err := d.reservePages(pageCount)
	if err != nil {
		return err
	}
	d.pages = pages
	d.start = position.Position{Page: pageCount / 2, Offset: d.capacity / 2}
	d.end = d.start
	d.gen = nextGeneration()
	return nil
}

// ensureTable re-initialises a zero or cleared deque before its first mutation.
func (d *Deque[T]) ensureTable() error {
	d.setup()
	if len(d.pages) == 0 {
		return d.init(d.config.PageCount)
	}
	return nil
}

// usedPages counts the pages spanned by the occupied range, including the
// page holding the end cursor.
func (d *Deque[T]) usedPages() int {
	return d.end.Page - d.start.Page + 1
}

// makeRoomBack ensures the slot at the end cursor is on a page that is not
// the last one, so stepping past it stays inside the table.
func (d *Deque[T]) makeRoomBack() error {
	if err := d.ensureTable(); err != nil {
		return err
	}
	for d.end.Page >= len(d.pages)-1 {
		if err := d.relocate(); err != nil {
			return err
		}
	}
	return nil
}

// makeRoomFront ensures the start cursor is not on the first page.
func (d *Deque[T]) makeRoomFront() error {
	if err := d.ensureTable(); err != nil {
		return err
	}
	for d.start.Page == 0 {
		if err := d.relocate(); err != nil {
			return err
		}
	}
	return nil
}

// relocate recenters the occupied pages when the table is at most half
// used, and grows it otherwise.
func (d *Deque[T]) relocate() error {
	count := len(d.pages)
	used := d.usedPages()
	if used*2 <= count && count-used >= 2 {
		d.recenter()
		return nil
	}
	return d.grow()
}

// recenter rotates the page directory so the occupied pages sit in the
// middle. Pages are handles, so no element is moved or reconstructed.
func (d *Deque[T]) recenter() {
	count := len(d.pages)
	shift := (count-d.usedPages())/2 - d.start.Page
	pages := make([][]T, count)
	for i, page := range d.pages {
		pages[((i+shift)%count+count)%count] = page
	}
	d.pages = pages
	d.start.Page += shift
	d.end.Page += shift
	d.gen = nextGeneration()
	d.event("Recenter")
	d.log.Debugw("recenter", "pages", count, "shift", shift, "size", d.Len())
}

// grow doubles the page table and move-constructs every live element into
// the middle of the new one. On failure the new table is torn down and the
// deque is left exactly as it was.
func (d *Deque[T]) grow() error {
	oldCount := len(d.pages)
	newCount := oldCount * 2
	pages, err := d.reservePages(newCount)
	if err != nil {
		d.log.Warnw("grow", "from", oldCount, "to", newCount, "error", err)
		return err
	}

	shift := (newCount-d.usedPages())/2 - d.start.Page
	newStart := position.Position{Page: d.start.Page + shift, Offset: d.start.Offset}
	newEnd := position.Position{Page: d.end.Page + shift, Offset: d.end.Offset}

	moved := 0
	dst := newStart
	for src := d.start; src != d.end; src = position.StepRight(src, d.capacity) {
		from := &d.pages[src.Page][src.Offset]
		if err := d.alloc.Construct(&pages[dst.Page][dst.Offset], alloc.Value(*from)); err != nil {
			undo := newStart
			for i := 0; i < moved; i++ {
				d.alloc.Destroy(&pages[undo.Page][undo.Offset])
				undo = position.StepRight(undo, d.capacity)
			}
			d.releasePages(pages)
			d.event("Grow.Rollback")
			d.log.Warnw("grow rolled back", "from", oldCount, "to", newCount, "moved", moved, "error", err)
			return fmt.Errorf("%w: moving element %d during growth: %w", dqerrors.ErrConstructionFailure, moved, err)
		}
		moved++
		dst = position.StepRight(dst, d.capacity)
	}

	for p := d.start; p != d.end; p = position.StepRight(p, d.capacity) {
		d.alloc.Destroy(&d.pages[p.Page][p.Offset])
	}
	d.releasePages(d.pages)

	d.pages = pages
	d.start = newStart
	d.end = newEnd
	d.gen = nextGeneration()
	d.event("Grow")
	d.log.Debugw("grow", "from", oldCount, "to", newCount, "size", moved)
	return nil
}
