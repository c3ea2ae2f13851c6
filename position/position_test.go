package position

import (
	"math/rand"
	"testing"
)

const testCapacity = 10

func TestStepRight(t *testing.T) {
	cases := []struct {
		in, want Position
	}{
		{Position{0, 0}, Position{0, 1}},
		{Position{3, 8}, Position{3, 9}},
		{Position{3, 9}, Position{4, 0}},
	}
	for _, c := range cases {
		if got := StepRight(c.in, testCapacity); got != c.want {
			t.Errorf("StepRight(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStepLeft(t *testing.T) {
	cases := []struct {
		in, want Position
	}{
		{Position{0, 1}, Position{0, 0}},
		{Position{4, 0}, Position{3, 9}},
		{Position{0, 0}, Position{-1, 9}},
	}
	for _, c := range cases {
		if got := StepLeft(c.in, testCapacity); got != c.want {
			t.Errorf("StepLeft(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAdvance(t *testing.T) {
	cases := []struct {
		in    Position
		delta int
		want  Position
	}{
		{Position{2, 3}, 0, Position{2, 3}},
		{Position{2, 3}, 6, Position{2, 9}},
		{Position{2, 3}, 7, Position{3, 0}},
		{Position{2, 3}, 25, Position{4, 8}},
		{Position{2, 3}, -3, Position{2, 0}},
		{Position{2, 3}, -4, Position{1, 9}},
		{Position{2, 3}, -13, Position{1, 0}},
		{Position{2, 3}, -14, Position{0, 9}},
		{Position{2, 3}, -23, Position{0, 0}},
	}
	for _, c := range cases {
		if got := Advance(c.in, c.delta, testCapacity); got != c.want {
			t.Errorf("Advance(%v, %d) = %v, want %v", c.in, c.delta, got, c.want)
		}
	}
}

func TestAdvanceMatchesLinear(t *testing.T) {
	for i := 0; i < 1000; i++ {
		start := rand.Intn(10000)
		delta := rand.Intn(20000) - start
		got := Advance(FromLinear(start, testCapacity), delta, testCapacity)
		if got.Offset < 0 || got.Offset >= testCapacity {
			t.Fatalf("Advance(%d, %d) produced offset %d", start, delta, got.Offset)
		}
		if Linear(got, testCapacity) != start+delta {
			t.Fatalf("Advance(%d, %d) = %v, linear %d", start, delta, got, Linear(got, testCapacity))
		}
	}
}

func TestStepsAgreeWithAdvance(t *testing.T) {
	p := Position{5, 0}
	for i := 1; i <= 35; i++ {
		p = StepRight(p, testCapacity)
		if want := Advance(Position{5, 0}, i, testCapacity); p != want {
			t.Fatalf("after %d steps right got %v, want %v", i, p, want)
		}
	}
	for i := 1; i <= 35; i++ {
		p = StepLeft(p, testCapacity)
		if want := Advance(Position{5, 0}, 35-i, testCapacity); p != want {
			t.Fatalf("after %d steps left got %v, want %v", i, p, want)
		}
	}
}

func TestDistanceAndCompare(t *testing.T) {
	a := Position{3, 2}
	b := Position{1, 7}
	if d := Distance(a, b, testCapacity); d != 15 {
		t.Errorf("Distance = %d, want 15", d)
	}
	if d := Distance(b, a, testCapacity); d != -15 {
		t.Errorf("Distance = %d, want -15", d)
	}
	if Compare(a, b) != 1 || Compare(b, a) != -1 || Compare(a, a) != 0 {
		t.Errorf("Compare gave inconsistent results for %v and %v", a, b)
	}
	if !Less(Position{1, 2}, Position{1, 3}) || Less(Position{1, 3}, Position{1, 3}) {
		t.Errorf("Less is not a strict order within a page")
	}
}

func TestInvalidCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for zero capacity")
		}
	}()
	Advance(Position{}, 1, 0)
}
