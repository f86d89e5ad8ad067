package ssastore

import "testing"

func TestScalarRoundTrip(t *testing.T) {
	s := New(4)
	s.WriteU8(0, 0xAB)
	s.WriteU16(1, 0xBEEF)
	s.WriteU32(2, 0xDEADBEEF)
	s.WriteU64(3, 0x0123456789ABCDEF)

	if got := s.ReadU8(0); got != 0xAB {
		t.Fatalf("u8 got %x", got)
	}
	if got := s.ReadU16(1); got != 0xBEEF {
		t.Fatalf("u16 got %x", got)
	}
	if got := s.ReadU32(2); got != 0xDEADBEEF {
		t.Fatalf("u32 got %x", got)
	}
	if got := s.ReadU64(3); got != 0x0123456789ABCDEF {
		t.Fatalf("u64 got %x", got)
	}
}

func TestU128RoundTrip(t *testing.T) {
	s := New(1)
	s.WriteU128(0, 0x1111111111111111, 0x2222222222222222)
	lo, hi := s.ReadU128(0)
	if lo != 0x1111111111111111 || hi != 0x2222222222222222 {
		t.Fatalf("u128 got lo=%x hi=%x", lo, hi)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	s := New(2)
	s.WriteF32(0, 3.5)
	s.WriteF64(1, -2.25)
	if got := s.ReadF32(0); got != 3.5 {
		t.Fatalf("f32 got %v", got)
	}
	if got := s.ReadF64(1); got != -2.25 {
		t.Fatalf("f64 got %v", got)
	}
}

func TestWriteZeroesUpperBytes(t *testing.T) {
	s := New(1)
	s.WriteU128(0, ^uint64(0), ^uint64(0))
	s.WriteU8(0, 0x01)
	full := s.ReadFull(0)
	for i := 1; i < 16; i++ {
		if full[i] != 0 {
			t.Fatalf("expected upper bytes zeroed, byte %d = %x", i, full[i])
		}
	}
}

func TestSnapshotFlattensSlotsInOrder(t *testing.T) {
	s := New(2)
	s.WriteU32(0, 0xAABBCCDD)
	s.WriteU64(1, 0x1122334455667788)
	snap := s.Snapshot()
	if len(snap) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(snap))
	}
	if got := uint32(snap[0]) | uint32(snap[1])<<8 | uint32(snap[2])<<16 | uint32(snap[3])<<24; got != 0xAABBCCDD {
		t.Fatalf("slot 0 mismatch: got %#x", got)
	}
}

func TestReset(t *testing.T) {
	s := New(2)
	s.WriteU64(0, 42)
	s.Reset(2)
	if got := s.ReadU64(0); got != 0 {
		t.Fatalf("expected reset slot to be zero, got %d", got)
	}
}
