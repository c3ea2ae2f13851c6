package fixtures

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/fission-codes/go-deque/alloc"
)

func TestAllocatorInjectsConstructFailure(t *testing.T) {
	a := NewAllocator[int]("test")
	slot := 7
	a.FailConstructAfter(2)
	if err := a.Construct(&slot, alloc.Value(1)); err != nil {
		t.Fatalf("first construct failed: %v", err)
	}
	err := a.Construct(&slot, alloc.Value(2))
	if !errors.Is(err, ErrInjected) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if slot != 1 {
		t.Errorf("failed construct modified the slot: %d", slot)
	}
	if err := a.Construct(&slot, alloc.Value(3)); err != nil {
		t.Errorf("failure should fire once, got %v", err)
	}
	if a.Live != 2 {
		t.Errorf("expected 2 live elements, got %d", a.Live)
	}
}

func TestAllocatorInjectsAllocateFailure(t *testing.T) {
	a := NewAllocator[int]("test")
	a.FailAllocateAfter(1)
	if _, err := a.Allocate(4); !errors.Is(err, ErrInjected) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	page, err := a.Allocate(4)
	if err != nil || len(page) != 4 {
		t.Fatalf("unexpected allocate result %v %v", page, err)
	}
	a.Deallocate(page)
	if !a.Balanced() {
		t.Errorf("expected balanced allocator, pages=%d live=%d", a.Pages, a.Live)
	}
}

func TestAllocatorSelectOnCopy(t *testing.T) {
	a := NewAllocator[int]("orig")
	c, ok := alloc.SelectOnCopy[int](a).(*Allocator[int])
	if !ok || c == a || c.Name != "orig/copy" {
		t.Errorf("unexpected copy allocator %#v", c)
	}
}

func TestFingerprintDetectsPayloadChange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []Item{RandItem(rng, 16), RandItem(rng, 16), {Key: 3, Payload: []byte{1, 2}}}
	before, err := Fingerprint(SliceValues(items))
	if err != nil {
		t.Fatal(err)
	}
	clone, _ := items[2].Clone()
	items[2] = clone
	same, _ := Fingerprint(SliceValues(items))
	if same != before {
		t.Errorf("clone changed the fingerprint")
	}
	items[2].Payload[0] = 9
	after, _ := Fingerprint(SliceValues(items))
	if after == before {
		t.Errorf("payload change not reflected in fingerprint")
	}
}

func TestApplyToSlice(t *testing.T) {
	model := []int{}
	for _, step := range []Step{
		{Op: PushBack, Value: 1},
		{Op: PushBack, Value: 2},
		{Op: PushFront, Value: 0},
		{Op: Insert, Value: 9, Index: 1},
		{Op: Erase, Index: 2},
		{Op: PopFront},
	} {
		model = ApplyToSlice(model, step)
	}
	want := []int{9, 2}
	if len(model) != len(want) || model[0] != want[0] || model[1] != want[1] {
		t.Errorf("expected %v, got %v", want, model)
	}
	if got := ApplyToSlice(nil, Step{Op: PopBack}); len(got) != 0 {
		t.Errorf("pop on empty model should be skipped, got %v", got)
	}
}

func TestRandScriptIsDeterministic(t *testing.T) {
	a := RandScript(rand.New(rand.NewSource(42)), 50)
	b := RandScript(rand.New(rand.NewSource(42)), 50)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
