package fixtures

import (
	"fmt"
	"math/rand"
)

// Op is a single container mutation in a random script.
type Op int

const (
	PushBack Op = iota
	PushFront
	PopBack
	PopFront
	Insert
	Erase
)

func (op Op) String() string {
	switch op {
	case PushBack:
		return "PushBack"
	case PushFront:
		return "PushFront"
	case PopBack:
		return "PopBack"
	case PopFront:
		return "PopFront"
	case Insert:
		return "Insert"
	case Erase:
		return "Erase"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Step is one scripted operation. Index is only meaningful for Insert and
// Erase and is taken modulo the valid range when the step is applied.
type Step struct {
	Op    Op
	Value int
	Index int
}

// RandScript returns n random steps. Pushes are weighted so the container
// tends to grow; pops and erases on an empty container are expected to be
// skipped by the caller.
func RandScript(rng *rand.Rand, n int) []Step {
	weights := []Op{PushBack, PushBack, PushFront, PushFront, PopBack, PopFront, Insert, Erase}
	steps := make([]Step, n)
	for i := range steps {
		steps[i] = Step{
			Op:    weights[rng.Intn(len(weights))],
			Value: rng.Int(),
			Index: rng.Int(),
		}
	}
	return steps
}

// ApplyToSlice runs step against a plain slice model and returns the result.
func ApplyToSlice(model []int, step Step) []int {
	switch step.Op {
	case PushBack:
		return append(model, step.Value)
	case PushFront:
		return append([]int{step.Value}, model...)
	case PopBack:
		if len(model) == 0 {
			return model
		}
		return model[:len(model)-1]
	case PopFront:
		if len(model) == 0 {
			return model
		}
		return model[1:]
	case Insert:
		i := step.Index % (len(model) + 1)
		model = append(model, 0)
		copy(model[i+1:], model[i:])
		model[i] = step.Value
		return model
	case Erase:
		if len(model) == 0 {
			return model
		}
		i := step.Index % len(model)
		return append(model[:i], model[i+1:]...)
	}
	return model
}
