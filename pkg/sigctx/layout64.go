// Package sigctx implements guest context marshalling (spec §4.4,
// component C4): pack/unpack of the guest ucontext_t at signal
// delivery/sigreturn, and siginfo_t translation between host and
// 32-bit guest layouts. Every struct here is a fixed-size byte blob
// with accessor methods at the documented offsets (spec §6) rather
// than a Go struct of typed fields — the host kernel ABI defines
// dozens of reserved/union bytes this core never interprets, and a
// byte blob makes "bytes we don't understand" the default instead of
// something that has to be modeled as padding fields we'd have to get
// exactly right to match a C compiler's layout decisions.
package sigctx

import (
	"encoding/binary"
	"unsafe"
)

// Sizes per spec §6.
const (
	SizeStack64    = 24
	SizeFXSave64   = 512
	SizeMContext64 = 256
	SizeSigset64   = 128
	SizeUContext64 = 424
)

// uc_flags bits (64-bit only unless noted).
const (
	UCFPXState        uint64 = 1 // both 32- and 64-bit guests
	UCSigContextSS    uint64 = 2
	UCStrictRestoreSS uint64 = 4
)

// GPR indices into mcontext_t.gregs for x86_64, per spec §6.
const (
	GReg64R8 = iota
	GReg64R9
	GReg64R10
	GReg64R11
	GReg64R12
	GReg64R13
	GReg64R14
	GReg64R15
	GReg64RDI
	GReg64RSI
	GReg64RBP
	GReg64RBX
	GReg64RDX
	GReg64RAX
	GReg64RCX
	GReg64RSP
	GReg64RIP
	GReg64EFL
	GReg64CSGSFS
	GReg64ERR
	GReg64TRAPNO
	GReg64OLDMASK
	GReg64CR2
	numGReg64 = 23
)

// Stack64 is x86_64 stack_t: sp@0, flags@8, size@16.
type Stack64 [SizeStack64]byte

func (s *Stack64) SP() uint64      { return binary.LittleEndian.Uint64(s[0:8]) }
func (s *Stack64) SetSP(v uint64)  { binary.LittleEndian.PutUint64(s[0:8], v) }
func (s *Stack64) Flags() int32    { return int32(binary.LittleEndian.Uint32(s[8:12])) }
func (s *Stack64) SetFlags(v int32) {
	binary.LittleEndian.PutUint32(s[8:12], uint32(v))
}
func (s *Stack64) Size() uint64     { return binary.LittleEndian.Uint64(s[16:24]) }
func (s *Stack64) SetSize(v uint64) { binary.LittleEndian.PutUint64(s[16:24], v) }

// FXSave64 is the x86_64 FXSAVE area: fcw@0, fsw@2, ftw@4, mxcsr@24,
// _st[8]@32, _xmm[16]@160.
type FXSave64 [SizeFXSave64]byte

func (f *FXSave64) FCW() uint16     { return binary.LittleEndian.Uint16(f[0:2]) }
func (f *FXSave64) SetFCW(v uint16) { binary.LittleEndian.PutUint16(f[0:2], v) }
func (f *FXSave64) FSW() uint16     { return binary.LittleEndian.Uint16(f[2:4]) }
func (f *FXSave64) SetFSW(v uint16) { binary.LittleEndian.PutUint16(f[2:4], v) }
func (f *FXSave64) FTW() uint8      { return f[4] }
func (f *FXSave64) SetFTW(v uint8)  { f[4] = v }
func (f *FXSave64) MXCSR() uint32   { return binary.LittleEndian.Uint32(f[24:28]) }
func (f *FXSave64) SetMXCSR(v uint32) {
	binary.LittleEndian.PutUint32(f[24:28], v)
}

func (f *FXSave64) ST(i int) []byte  { off := 32 + i*16; return f[off : off+16] }
func (f *FXSave64) XMM(i int) []byte { off := 160 + i*16; return f[off : off+16] }

// MContext64 is x86_64 mcontext_t: gregs[23]@0, fpregs-ptr@184.
type MContext64 [SizeMContext64]byte

func (m *MContext64) GReg(i int) uint64     { return binary.LittleEndian.Uint64(m[i*8 : i*8+8]) }
func (m *MContext64) SetGReg(i int, v uint64) {
	binary.LittleEndian.PutUint64(m[i*8:i*8+8], v)
}
func (m *MContext64) FPRegsPtr() uint64 { return binary.LittleEndian.Uint64(m[184:192]) }
func (m *MContext64) SetFPRegsPtr(v uint64) {
	binary.LittleEndian.PutUint64(m[184:192], v)
}

// Sigset64 is x86_64 sigset_t: 16 uint64 words.
type Sigset64 [SizeSigset64]byte

func (s *Sigset64) Word(i int) uint64 { return binary.LittleEndian.Uint64(s[i*8 : i*8+8]) }
func (s *Sigset64) SetWord(i int, v uint64) {
	binary.LittleEndian.PutUint64(s[i*8:i*8+8], v)
}

// UContext64 is x86_64 ucontext_t: flags@0, link@8, stack@16,
// mcontext@40, sigmask@296.
type UContext64 [SizeUContext64]byte

func (u *UContext64) Flags() uint64     { return binary.LittleEndian.Uint64(u[0:8]) }
func (u *UContext64) SetFlags(v uint64) { binary.LittleEndian.PutUint64(u[0:8], v) }
func (u *UContext64) Link() uint64      { return binary.LittleEndian.Uint64(u[8:16]) }
func (u *UContext64) SetLink(v uint64)  { binary.LittleEndian.PutUint64(u[8:16], v) }

// Stack, MContext and Sigmask return pointers into the ucontext_t's own
// backing array at the documented offsets, so writes through them are
// writes to the ucontext_t itself.
func (u *UContext64) Stack() *Stack64 {
	return (*Stack64)(unsafe.Pointer(&u[16]))
}
func (u *UContext64) MContext() *MContext64 {
	return (*MContext64)(unsafe.Pointer(&u[40]))
}
func (u *UContext64) Sigmask() *Sigset64 {
	return (*Sigset64)(unsafe.Pointer(&u[296]))
}

// Static size assertions (spec §7.3): a mismatch here is a compile
// error, not a runtime one.
var (
	_ [SizeStack64 - len(Stack64{})]byte
	_ [len(Stack64{}) - SizeStack64]byte
	_ [SizeFXSave64 - len(FXSave64{})]byte
	_ [len(FXSave64{}) - SizeFXSave64]byte
	_ [SizeMContext64 - len(MContext64{})]byte
	_ [len(MContext64{}) - SizeMContext64]byte
	_ [SizeSigset64 - len(Sigset64{})]byte
	_ [len(Sigset64{}) - SizeSigset64]byte
	_ [SizeUContext64 - len(UContext64{})]byte
	_ [len(UContext64{}) - SizeUContext64]byte
)
