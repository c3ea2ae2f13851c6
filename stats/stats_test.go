package stats

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextPrefixesEvents(t *testing.T) {
	root := NewDefaultStatsAndReporting()
	alloc := root.WithContext("Allocator")
	alloc.Log("Construct.Ok")
	alloc.WithContext("Page").Log("Allocate")
	alloc.LogBytes("Allocate", 64)
	alloc.LogInterval("Construct", time.Millisecond)

	if c := root.Count("Allocator.Construct.Ok"); c != 1 {
		t.Errorf("expected 1 Construct.Ok event, got %d", c)
	}
	if c := root.Count("Allocator.Page.Allocate"); c != 1 {
		t.Errorf("expected nested context event, got %d", c)
	}
	if name := alloc.WithContext("Page").Name(); name != "Allocator.Page" {
		t.Errorf("unexpected context name %q", name)
	}
	snap := root.Snapshot()
	if b := snap.Bytes("Allocator.Allocate"); b != 64 {
		t.Errorf("expected 64 bytes, got %d", b)
	}
	if i := snap.Interval("Allocator.Construct"); i != time.Millisecond {
		t.Errorf("expected 1ms, got %v", i)
	}
	if c := snap.Count("never.logged"); c != 0 {
		t.Errorf("expected missing event to count 0, got %d", c)
	}
}

func TestSnapshotDiffAndFilter(t *testing.T) {
	root := NewDefaultStatsAndReporting()
	root.Log("a.x")
	before := root.Snapshot()
	root.Log("a.x")
	root.Log("a.x")
	root.Log("b.y")
	after := root.Snapshot()

	diff := before.Diff(after)
	if c := diff.Count("a.x"); c != 2 {
		t.Errorf("expected diff of 2, got %d", c)
	}
	if c := diff.Count("b.y"); c != 1 {
		t.Errorf("expected diff of 1, got %d", c)
	}
	filtered := after.Filter("a.")
	if keys := filtered.Keys(); len(keys) != 1 || keys[0] != "a.x" {
		t.Errorf("unexpected filtered keys %v", keys)
	}
}

func TestSnapshotEncoding(t *testing.T) {
	root := NewDefaultStatsAndReporting()
	root.Log("Grow")
	root.LogBytes("Allocate", 128)
	snap := root.Snapshot()

	data, err := snap.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	var decoded Snapshot
	if err := decoded.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	if decoded.Count("Grow") != 1 || decoded.Bytes("Allocate") != 128 {
		t.Errorf("decoded snapshot lost data: %v", decoded.Keys())
	}

	js, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var raw map[string]Bucket
	if err := json.Unmarshal(js, &raw); err != nil {
		t.Fatalf("json output is not a bucket map: %v", err)
	}
	if raw["Grow"].Count != 1 {
		t.Errorf("unexpected json content %s", js)
	}
}

func TestSnapshotWrite(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	root := NewStatsWithLogger(zap.New(core).Sugar())
	root.Log("Push")
	root.LogBytes("Allocate", 8)
	root.Snapshot().Write(root.Logger())

	if logs.Len() != 2 {
		t.Fatalf("expected 2 snapshot lines, got %d", logs.Len())
	}
	first := logs.All()[0]
	if first.Message != "snapshot" {
		t.Errorf("unexpected message %q", first.Message)
	}
	if first.ContextMap()["event"] != "Allocate" {
		t.Errorf("expected keys written in sorted order, got %v", first.ContextMap())
	}
}
