package tracestore

import (
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	rec := Record{
		BlockBytes:    []byte{0x01, 0x02, 0x03},
		EntryRIP:      0x400000,
		StoreSnapshot: []byte("snapshot-bytes-here"),
	}
	if err := store.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(rec.BlockBytes, rec.EntryRIP)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected record to exist")
	}
	if got.EntryRIP != rec.EntryRIP || string(got.StoreSnapshot) != string(rec.StoreSnapshot) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestGetMissingReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Get([]byte{0xFF}, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected no record")
	}
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Key([]byte{1, 2, 3}, 42)
	b := Key([]byte{1, 2, 3}, 42)
	if a != b {
		t.Fatalf("Key not deterministic: %v != %v", a, b)
	}
	c := Key([]byte{1, 2, 3}, 43)
	if a == c {
		t.Fatalf("Key collided across different entry RIPs")
	}
}
