package kernels

import (
	"math"
	"testing"

	"xlate/pkg/ir"
	"xlate/pkg/ssastore"
)

// newExec builds an ExecData over a block with n source nodes
// followed by one destination node at index n, the shape every test
// in this file uses: write sources by hand, run the kernel under
// test, read the destination back out.
func newExec(n int) (*ir.ExecData, *ssastore.Store) {
	store := ssastore.New(n + 1)
	block := &ir.Block{Headers: make([]ir.Header, n+1)}
	return &ir.ExecData{Store: store, Block: block}, store
}

func TestAddScenario(t *testing.T) {
	ed, store := newExec(2)
	store.WriteU32(0, 0x7FFFFFFF)
	store.WriteU32(1, 1)
	h := &ir.Header{Op: ir.OpAdd, ResultSize: 4, Args: [4]ir.NodeID{0, 1}}
	Add(ed, h, 2)
	if got := store.ReadU32(2); got != 0x80000000 {
		t.Fatalf("Add scenario: got %#x", got)
	}
}

func TestMulHScenario(t *testing.T) {
	ed, store := newExec(2)
	store.WriteU64(0, (1<<63)-1)
	store.WriteU64(1, 2)
	h := &ir.Header{Op: ir.OpMulH, ResultSize: 8, Args: [4]ir.NodeID{0, 1}}
	MulH(ed, h, 2)
	if got := store.ReadU64(2); got != 0 {
		t.Fatalf("MulH scenario: got %#x, want 0", got)
	}
}

func TestPDepScenario(t *testing.T) {
	ed, store := newExec(2)
	store.WriteU64(0, 0xFFFF)
	store.WriteU64(1, 0xAAAAAAAA)
	h := &ir.Header{Op: ir.OpPDep, ResultSize: 8, Args: [4]ir.NodeID{0, 1}}
	PDep(ed, h, 2)
	if got := store.ReadU64(2); got != 0xAAAAAAAA {
		t.Fatalf("PDep scenario: got %#x", got)
	}
}

func TestVCMPGTScenario(t *testing.T) {
	ed, store := newExec(2)
	var a, b [16]byte
	putLaneU(&a, 2, 0, 0x0001)
	putLaneU(&a, 2, 1, 0x8000)
	putLaneU(&a, 2, 2, 0x7FFF)
	putLaneU(&a, 2, 3, 0x0000)
	store.WriteFull(0, a)
	store.WriteFull(1, b)
	h := &ir.Header{Op: ir.OpVCMPGT, ResultSize: 8, ElemSize: 2, Args: [4]ir.NodeID{0, 1}}
	VCMPGT(ed, h, 2)
	out := store.ReadFull(2)
	want := []uint64{0xFFFF, 0x0000, 0xFFFF, 0x0000}
	for i, w := range want {
		if got := laneU(out, 2, i); got != w {
			t.Fatalf("VCMPGT lane %d: got %#x want %#x", i, got, w)
		}
	}
}

func TestVSQAddScenario(t *testing.T) {
	ed, store := newExec(2)
	var a, b [16]byte
	src1 := []int64{120, -120, 100, 0}
	src2 := []int64{20, -20, -100, 0}
	for i, v := range src1 {
		putLaneU(&a, 1, i, truncU64(uint64(v), 1))
	}
	for i, v := range src2 {
		putLaneU(&b, 1, i, truncU64(uint64(v), 1))
	}
	store.WriteFull(0, a)
	store.WriteFull(1, b)
	h := &ir.Header{Op: ir.OpVSQAdd, ResultSize: 8, ElemSize: 1, Args: [4]ir.NodeID{0, 1}}
	VSQAdd(ed, h, 2)
	out := store.ReadFull(2)
	want := []int64{127, -128, 0, 0}
	for i, w := range want {
		if got := laneS(out, 1, i); got != w {
			t.Fatalf("VSQAdd lane %d: got %d want %d", i, got, w)
		}
	}
}

func TestVFCMPUNOScenario(t *testing.T) {
	ed, store := newExec(2)
	var a, b [16]byte
	src1 := []float32{float32(math.NaN()), 1.0, 1.0, 2.0}
	src2 := []float32{0.0, float32(math.NaN()), 1.0, 2.0}
	for i, v := range src1 {
		putLaneU(&a, 4, i, uint64(math.Float32bits(v)))
	}
	for i, v := range src2 {
		putLaneU(&b, 4, i, uint64(math.Float32bits(v)))
	}
	store.WriteFull(0, a)
	store.WriteFull(1, b)
	h := &ir.Header{Op: ir.OpVFCMPUNO, ResultSize: 16, ElemSize: 4, Args: [4]ir.NodeID{0, 1}}
	VFCMPUNO(ed, h, 2)
	out := store.ReadFull(2)
	want := []uint64{0xFFFFFFFF, 0xFFFFFFFF, 0, 0}
	for i, w := range want {
		if got := laneU(out, 4, i); got != w {
			t.Fatalf("VFCMPUNO lane %d: got %#x want %#x", i, got, w)
		}
	}
}

// P3: shift counts wrap modulo OpSize*8.
func TestLshlShiftCountWraps(t *testing.T) {
	ed, store := newExec(2)
	store.WriteU32(0, 1)
	h := &ir.Header{Op: ir.OpLshl, ResultSize: 4, Args: [4]ir.NodeID{0, 1}}
	store.WriteU32(1, 3)
	Lshl(ed, h, 2)
	direct := store.ReadU32(2)

	store.WriteU32(1, 3+32)
	Lshl(ed, h, 2)
	wrapped := store.ReadU32(2)

	if direct != wrapped {
		t.Fatalf("P3 violated: direct=%#x wrapped=%#x", direct, wrapped)
	}
}

// P4: Popcount(x) + Popcount(~x) == OpSize*8.
func TestPopcountComplement(t *testing.T) {
	ed, store := newExec(2)
	store.WriteU64(0, 0x0123456789ABCDEF)
	h := &ir.Header{Op: ir.OpPopcount, ResultSize: 8, Args: [4]ir.NodeID{0}}
	Popcount(ed, h, 1)
	p1 := store.ReadU64(1)

	store.WriteU64(0, ^uint64(0x0123456789ABCDEF))
	Popcount(ed, h, 1)
	p2 := store.ReadU64(1)

	if p1+p2 != 64 {
		t.Fatalf("P4 violated: %d + %d != 64", p1, p2)
	}
}

// P5: PDep(PExt(x, m), m) & m == x & m.
func TestPDepPExtRoundTrip(t *testing.T) {
	ed, store := newExec(3)
	x, m := uint64(0xDEADBEEF), uint64(0xF0F0F0F0)
	store.WriteU32(0, uint32(x))
	store.WriteU32(1, uint32(m))
	hExt := &ir.Header{Op: ir.OpPExt, ResultSize: 4, Args: [4]ir.NodeID{0, 1}}
	PExt(ed, hExt, 2)

	hDep := &ir.Header{Op: ir.OpPDep, ResultSize: 4, Args: [4]ir.NodeID{2, 1}}
	PDep(ed, hDep, 3)

	got := uint64(store.ReadU32(3)) & m
	want := x & m
	if got != want {
		t.Fatalf("P5 violated: got %#x want %#x", got, want)
	}
}

// P6: VCMPEQ(a,a) is all-ones regardless of lane values.
func TestVCMPEQSelfAllOnes(t *testing.T) {
	ed, store := newExec(2)
	var a [16]byte
	for i := 0; i < 4; i++ {
		putLaneU(&a, 4, i, uint64(i)*0x11111111)
	}
	store.WriteFull(0, a)
	store.WriteFull(1, a)
	h := &ir.Header{Op: ir.OpVCMPEQ, ResultSize: 16, ElemSize: 4, Args: [4]ir.NodeID{0, 1}}
	VCMPEQ(ed, h, 2)
	out := store.ReadFull(2)
	for i := 0; i < 4; i++ {
		if got := laneU(out, 4, i); got != 0xFFFFFFFF {
			t.Fatalf("P6 violated at lane %d: got %#x", i, got)
		}
	}
}

// P7: VBSL(mask, a, b) == (a & mask) | (b & ~mask).
func TestVBSLMatchesFormula(t *testing.T) {
	ed, store := newExec(3)
	mask := [16]byte{0xFF, 0x00, 0xF0, 0x0F}
	a := [16]byte{0xAA, 0xAA, 0xAA, 0xAA}
	b := [16]byte{0x55, 0x55, 0x55, 0x55}
	store.WriteFull(0, mask)
	store.WriteFull(1, a)
	store.WriteFull(2, b)
	h := &ir.Header{Op: ir.OpVBSL, ResultSize: 16, Args: [4]ir.NodeID{0, 1, 2}}
	VBSL(ed, h, 3)
	out := store.ReadFull(3)
	for i := 0; i < 4; i++ {
		want := (a[i] & mask[i]) | (b[i] &^ mask[i])
		if out[i] != want {
			t.Fatalf("P7 violated at byte %d: got %#x want %#x", i, out[i], want)
		}
	}
}

// P9: VUQAdd never produces a value less than either input.
func TestVUQAddNeverBelowInputs(t *testing.T) {
	ed, store := newExec(2)
	var a, b [16]byte
	putLaneU(&a, 1, 0, 0xF0)
	putLaneU(&b, 1, 0, 0x20)
	store.WriteFull(0, a)
	store.WriteFull(1, b)
	h := &ir.Header{Op: ir.OpVUQAdd, ResultSize: 8, ElemSize: 1, Args: [4]ir.NodeID{0, 1}}
	VUQAdd(ed, h, 2)
	out := store.ReadFull(2)
	got := laneU(out, 1, 0)
	if got < 0xF0 || got < 0x20 {
		t.Fatalf("P9 violated: got %#x", got)
	}
	if got != 0xFF {
		t.Fatalf("expected saturation to 0xFF, got %#x", got)
	}
}

// P10: FCmp with either operand NaN sets exactly mask & {LT,EQ}, plus
// UNORDERED iff present in mask.
func TestFCmpNaNMaskBehavior(t *testing.T) {
	ed, store := newExec(2)
	store.WriteF32(0, float32(math.NaN()))
	store.WriteF32(1, 1.0)
	mask := ir.FCmpFlagLT | ir.FCmpFlagEQ | ir.FCmpFlagUnordered
	h := &ir.Header{Op: ir.OpFCmp, ResultSize: 1, ElemSize: 4, FlagMask: mask, Args: [4]ir.NodeID{0, 1}}
	FCmp(ed, h, 2)
	got := store.ReadU8(2)
	want := uint8(ir.FCmpFlagLT | ir.FCmpFlagEQ | ir.FCmpFlagUnordered)
	if got != want {
		t.Fatalf("P10 violated: got %#x want %#x", got, want)
	}
}

func TestSelectIntegerCompare(t *testing.T) {
	ed, store := newExec(4)
	store.WriteU32(0, 5)
	store.WriteU32(1, 10)
	store.WriteU32(2, 111)
	store.WriteU32(3, 222)
	h := &ir.Header{Op: ir.OpSelect, ResultSize: 4, CompareSize: 4, Cond: ir.CondSLT, Args: [4]ir.NodeID{0, 1, 2, 3}}
	Select(ed, h, 4)
	if got := store.ReadU32(4); got != 111 {
		t.Fatalf("Select: got %d want 111", got)
	}
}
