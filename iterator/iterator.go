package iterator

import "errors"

var ErrDone = errors.New("no more items in iterator")

// Iterator is a pull-style cursor. Next returns ErrDone once exhausted.
type Iterator[T any] interface {
	Next() (*T, error)
}

type SliceIterator[T any] struct {
	items []T
	idx   int
}

func NewSliceIterator[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		items: items,
		idx:   0,
	}
}

func (i *SliceIterator[T]) Next() (*T, error) {
	if i.idx < len(i.items) {
		i.idx += 1
		return &i.items[i.idx-1], nil
	} else {
		return nil, ErrDone
	}
}

// Drain pulls every remaining item from it, calling fn on each.
// It stops early and returns the first error that is not ErrDone.
func Drain[T any](it Iterator[T], fn func(*T) error) error {
	for {
		item, err := it.Next()
		if errors.Is(err, ErrDone) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
}

// Collect copies every remaining item of it into a slice.
func Collect[T any](it Iterator[T]) ([]T, error) {
	var result []T
	err := Drain(it, func(item *T) error {
		result = append(result, *item)
		return nil
	})
	return result, err
}
