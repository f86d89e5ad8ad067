package u128

import "testing"

func TestAddSub(t *testing.T) {
	a := FromParts(^uint64(0), 0)
	b := From64(1)
	got := a.Add(b)
	want := FromParts(0, 1)
	if got != want {
		t.Fatalf("Add carry: got %+v want %+v", got, want)
	}
	if got.Sub(b) != a {
		t.Fatalf("Sub did not invert Add")
	}
}

func TestMulTruncated(t *testing.T) {
	a := From64(1 << 63)
	got := a.Mul(From64(2))
	want := FromParts(0, 1)
	if got != want {
		t.Fatalf("Mul: got %+v want %+v", got, want)
	}
}

func TestMul256UpperHalf(t *testing.T) {
	// (2^127) * 2 = 2^128 exactly -> low128=0, high128=1.
	a := FromParts(0, 1<<63)
	b := From64(2)
	lo, hi := Mul256(a, b)
	if lo != (U128{}) || hi != From64(1) {
		t.Fatalf("Mul256: got lo=%+v hi=%+v", lo, hi)
	}
}

func TestMul256MaxValues(t *testing.T) {
	max := FromParts(^uint64(0), ^uint64(0))
	lo, hi := Mul256(max, max)
	// (2^128-1)^2 = 2^256 - 2*2^128 + 1
	wantLo := From64(1)
	wantHi := FromParts(^uint64(0)-1, ^uint64(0))
	if lo != wantLo || hi != wantHi {
		t.Fatalf("Mul256(max,max): got lo=%+v hi=%+v", lo, hi)
	}
}

func TestDivMod(t *testing.T) {
	a := FromParts(0, 1) // 2^64
	b := From64(3)
	q, r := DivMod(a, b)
	wantQ := From64((1 << 64) / 3)
	wantR := From64((1 << 64) % 3)
	if q != wantQ || r != wantR {
		t.Fatalf("DivMod: got q=%+v r=%+v want q=%+v r=%+v", q, r, wantQ, wantR)
	}
}

func TestSignShiftsAndCmp(t *testing.T) {
	neg1 := FromParts(^uint64(0), ^uint64(0))
	if !neg1.Sign() {
		t.Fatal("expected -1 to be negative")
	}
	if neg1.ARsh(4) != neg1 {
		t.Fatal("arithmetic shift of -1 should remain -1")
	}
	if From64(1).Cmp(From64(2)) >= 0 {
		t.Fatal("expected 1 < 2")
	}
}
