package traceshard

import (
	"bytes"
	"testing"
)

func TestSplitReconstructRoundTrip(t *testing.T) {
	segment := bytes.Repeat([]byte("trace-segment-payload"), 500)
	set, err := Split(segment, 4, 2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(set.Shards) != 6 {
		t.Fatalf("expected 6 shards, got %d", len(set.Shards))
	}

	got, err := Reconstruct(set)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !bytes.Equal(got, segment) {
		t.Fatalf("round trip mismatch")
	}
}

func TestReconstructToleratesDroppedShards(t *testing.T) {
	segment := bytes.Repeat([]byte("another-trace-payload"), 300)
	set, err := Split(segment, 4, 2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// Drop up to MaxTolerableLoss shards and confirm recovery still works.
	damaged := set
	damaged.Shards = append([][]byte(nil), set.Shards...)
	damaged.Shards[1] = nil
	damaged.Shards[4] = nil

	got, err := Reconstruct(damaged)
	if err != nil {
		t.Fatalf("Reconstruct with %d dropped shards: %v", MaxTolerableLoss(set), err)
	}
	if !bytes.Equal(got, segment) {
		t.Fatalf("round trip mismatch after dropped shards")
	}
}
