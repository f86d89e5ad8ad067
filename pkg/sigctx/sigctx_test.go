package sigctx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// P11: GPR indices round-trip through MContext64/MContext32.
func TestGRegRoundTrip64(t *testing.T) {
	var mc MContext64
	for i := 0; i < numGReg64; i++ {
		mc.SetGReg(i, uint64(i)*0x1111111111111111)
	}
	for i := 0; i < numGReg64; i++ {
		want := uint64(i) * 0x1111111111111111
		if got := mc.GReg(i); got != want {
			t.Fatalf("GReg(%d): got %#x want %#x", i, got, want)
		}
	}
}

func TestGRegRoundTrip32(t *testing.T) {
	var mc MContext32
	for i := 0; i < numGReg32; i++ {
		mc.SetGReg(i, uint32(i)*0x11111111)
	}
	for i := 0; i < numGReg32; i++ {
		want := uint32(i) * 0x11111111
		if got := mc.GReg(i); got != want {
			t.Fatalf("GReg(%d): got %#x want %#x", i, got, want)
		}
	}
}

func TestPackUnpackUContext64RoundTrip(t *testing.T) {
	ms := &MachineState64{UCFlags: UCFPXState}
	for i := range ms.GReg {
		ms.GReg[i] = uint64(i) + 1
	}
	ms.GReg[GReg64CR2] = 0xDEADBEEF
	ms.GReg[GReg64RIP] = 0x400000

	var stack Stack64
	stack.SetSP(0x7ffff000)
	stack.SetSize(16384)

	var mask Sigset64
	mask.SetWord(0, 1<<10)

	var uc UContext64
	PackUContext64(&uc, ms, stack, mask, 0x1000)

	if uc.MContext().FPRegsPtr() != 0x1000 {
		t.Fatalf("FPRegsPtr: got %#x", uc.MContext().FPRegsPtr())
	}
	if got := uc.Stack().SP(); got != 0x7ffff000 {
		t.Fatalf("Stack SP: got %#x", got)
	}

	got, gotMask := UnpackUContext64(&uc, ms.FPState)
	if diff := cmp.Diff(ms.GReg, got.GReg); diff != "" {
		t.Fatalf("GReg round-trip mismatch (-want +got):\n%s", diff)
	}
	if gotMask != mask {
		t.Fatalf("sigmask round-trip mismatch: got %v want %v", gotMask, mask)
	}
}

func TestPackUnpackUContext32RoundTrip(t *testing.T) {
	ms := &MachineState32{}
	for i := range ms.GReg {
		ms.GReg[i] = uint32(i) + 1
	}
	ms.GReg[GReg32SS] = 0x2B

	var stack Stack32
	stack.SetSP(0xbffff000)

	var mask Sigset64
	mask.SetWord(1, 0xFF)

	var uc UContext32
	PackUContext32(&uc, ms, stack, mask, 0x2000)

	got, gotMask := UnpackUContext32(&uc, ms.FPState)
	if diff := cmp.Diff(ms.GReg, got.GReg); diff != "" {
		t.Fatalf("GReg round-trip mismatch (-want +got):\n%s", diff)
	}
	if gotMask != mask {
		t.Fatalf("sigmask round-trip mismatch: got %v want %v", gotMask, mask)
	}
}

func TestTranslateSiginfoToGuest32CopiesTrio(t *testing.T) {
	var src Siginfo64
	src.SetSigno(11)
	src.SetErrno(0)
	src.SetCode(1)
	copy(src.Pad(), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	var dst Siginfo32
	TranslateSiginfoToGuest32(&dst, &src)

	if dst.Signo() != 11 || dst.Errno() != 0 || dst.Code() != 1 {
		t.Fatalf("trio mismatch: %d/%d/%d", dst.Signo(), dst.Errno(), dst.Code())
	}
	if diff := cmp.Diff(src.Pad(), dst.Pad()[:len(src.Pad())]); diff != "" {
		t.Fatalf("pad mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSiginfoFromGuest32CopiesTrio(t *testing.T) {
	var src Siginfo32
	src.SetSigno(4)
	src.SetErrno(0)
	src.SetCode(0x80)
	copy(src.Pad(), []byte{9, 9, 9, 9})

	var dst Siginfo64
	TranslateSiginfoFromGuest32(&dst, &src)

	if dst.Signo() != 4 || dst.Errno() != 0 || dst.Code() != 0x80 {
		t.Fatalf("trio mismatch: %d/%d/%d", dst.Signo(), dst.Errno(), dst.Code())
	}
	if dst.Pad()[0] != 9 {
		t.Fatalf("pad not copied")
	}
}
