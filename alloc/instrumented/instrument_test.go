package instrumented

import (
	"errors"
	"testing"

	"github.com/fission-codes/go-deque/alloc"
	"github.com/fission-codes/go-deque/stats"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errBoom = errors.New("boom")

func TestAllocatorRecordsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	root := stats.NewStatsWithLogger(zap.New(core).Sugar())
	a := New[int64](alloc.NewDefault[int64](), root.WithContext("Allocator"))

	page, err := a.Allocate(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Construct(&page[0], alloc.Value[int64](5)); err != nil {
		t.Fatal(err)
	}
	err = a.Construct(&page[1], func() (int64, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	a.Destroy(&page[0])
	a.Deallocate(page)

	snap := root.Snapshot()
	for event, want := range map[string]uint64{
		"Allocator.Allocate.Ok":    1,
		"Allocator.Construct.Ok":   1,
		"Allocator.Construct.boom": 1,
		"Allocator.Destroy":        1,
		"Allocator.Deallocate":     1,
	} {
		if got := snap.Count(event); got != want {
			t.Errorf("%s: expected %d, got %d", event, want, got)
		}
	}
	if b := snap.Bytes("Allocator.Allocate"); b != 32 {
		t.Errorf("expected 32 bytes allocated, got %d", b)
	}
	if logs.FilterMessage("enter").FilterField(zap.String("method", "Allocate")).Len() != 1 {
		t.Errorf("expected an enter log for Allocate")
	}
	exits := logs.FilterMessage("exit").FilterField(zap.String("method", "Construct"))
	if exits.Len() != 2 {
		t.Errorf("expected an exit log for every Construct, got %d", exits.Len())
	}
	if exits.FilterField(zap.Error(errBoom)).Len() != 1 {
		t.Errorf("expected the failed Construct to log its error")
	}
	if logs.FilterMessage("exit").FilterField(zap.String("method", "Allocate")).FilterField(zap.Int("slots", 4)).Len() != 1 {
		t.Errorf("expected an exit log for Allocate with the page size")
	}
}

func TestAllocatorSelectOnCopyKeepsStats(t *testing.T) {
	root := stats.NewDefaultStatsAndReporting()
	a := New[string](alloc.NewDefault[string](), root)
	copied, ok := alloc.SelectOnCopy[string](a).(*Allocator[string])
	if !ok {
		t.Fatalf("copy is not instrumented")
	}
	if _, err := copied.Allocate(1); err != nil {
		t.Fatal(err)
	}
	if root.Count("SelectOnCopy") != 1 || root.Count("Allocate.Ok") != 1 {
		t.Errorf("copy did not record into the shared stats")
	}
	if _, ok := copied.Unwrap().(alloc.Default[string]); !ok {
		t.Errorf("unexpected inner allocator %T", copied.Unwrap())
	}
}
