package sigctx

import (
	"encoding/binary"
	"unsafe"
)

// Sizes per spec §6.
const (
	SizeStack32    = 12
	SizeMContext32 = 88
	SizeFPState32  = 624
	SizeUContext32 = 236
	SizeSiginfo32  = 128
)

// GPR indices into mcontext_t.gregs for x86 (32-bit), per spec §6.
const (
	GReg32GS = iota
	GReg32FS
	GReg32ES
	GReg32DS
	GReg32RDI
	GReg32RSI
	GReg32RBP
	GReg32RSP
	GReg32RBX
	GReg32RDX
	GReg32RCX
	GReg32RAX
	GReg32TRAPNO
	GReg32ERR
	GReg32EIP
	GReg32CS
	GReg32EFL
	GReg32UESP
	GReg32SS
	numGReg32 = 19
)

// Stack32 is x86 stack_t: sp@0, flags@4, size@8.
type Stack32 [SizeStack32]byte

func (s *Stack32) SP() uint32      { return binary.LittleEndian.Uint32(s[0:4]) }
func (s *Stack32) SetSP(v uint32)  { binary.LittleEndian.PutUint32(s[0:4], v) }
func (s *Stack32) Flags() int32    { return int32(binary.LittleEndian.Uint32(s[4:8])) }
func (s *Stack32) SetFlags(v int32) {
	binary.LittleEndian.PutUint32(s[4:8], uint32(v))
}
func (s *Stack32) Size() uint32     { return binary.LittleEndian.Uint32(s[8:12]) }
func (s *Stack32) SetSize(v uint32) { binary.LittleEndian.PutUint32(s[8:12], v) }

// MContext32 is x86 mcontext_t: gregs[19]@0, fpregs@76, oldmask@80, cr2@84.
type MContext32 [SizeMContext32]byte

func (m *MContext32) GReg(i int) uint32 { return binary.LittleEndian.Uint32(m[i*4 : i*4+4]) }
func (m *MContext32) SetGReg(i int, v uint32) {
	binary.LittleEndian.PutUint32(m[i*4:i*4+4], v)
}
func (m *MContext32) FPRegs() uint32     { return binary.LittleEndian.Uint32(m[76:80]) }
func (m *MContext32) SetFPRegs(v uint32) { binary.LittleEndian.PutUint32(m[76:80], v) }
func (m *MContext32) OldMask() uint32    { return binary.LittleEndian.Uint32(m[80:84]) }
func (m *MContext32) SetOldMask(v uint32) {
	binary.LittleEndian.PutUint32(m[80:84], v)
}
func (m *MContext32) CR2() uint32     { return binary.LittleEndian.Uint32(m[84:88]) }
func (m *MContext32) SetCR2(v uint32) { binary.LittleEndian.PutUint32(m[84:88], v) }

// FPState32 is the x86 FPU save area: fcw@0, fsw@4, mxcsr@152, _xmm[8]@288.
type FPState32 [SizeFPState32]byte

func (f *FPState32) FCW() uint16     { return binary.LittleEndian.Uint16(f[0:2]) }
func (f *FPState32) SetFCW(v uint16) { binary.LittleEndian.PutUint16(f[0:2], v) }
func (f *FPState32) FSW() uint16     { return binary.LittleEndian.Uint16(f[4:6]) }
func (f *FPState32) SetFSW(v uint16) { binary.LittleEndian.PutUint16(f[4:6], v) }
func (f *FPState32) MXCSR() uint32   { return binary.LittleEndian.Uint32(f[152:156]) }
func (f *FPState32) SetMXCSR(v uint32) {
	binary.LittleEndian.PutUint32(f[152:156], v)
}
func (f *FPState32) XMM(i int) []byte { off := 288 + i*16; return f[off : off+16] }

// UContext32 is x86 ucontext_t: flags@0, link@4, stack@8, mcontext@20,
// sigmask@108.
type UContext32 [SizeUContext32]byte

func (u *UContext32) Flags() uint32     { return binary.LittleEndian.Uint32(u[0:4]) }
func (u *UContext32) SetFlags(v uint32) { binary.LittleEndian.PutUint32(u[0:4], v) }
func (u *UContext32) Link() uint32      { return binary.LittleEndian.Uint32(u[4:8]) }
func (u *UContext32) SetLink(v uint32)  { binary.LittleEndian.PutUint32(u[4:8], v) }

func (u *UContext32) Stack() *Stack32 {
	return (*Stack32)(unsafe.Pointer(&u[8]))
}
func (u *UContext32) MContext() *MContext32 {
	return (*MContext32)(unsafe.Pointer(&u[20]))
}

// Sigmask returns the 32-bit guest's sigset_t tail of ucontext_t; the
// guest kernel ABI this core targets uses the same 128-byte sigset_t
// layout as the 64-bit guest (16 u64 words), just living at a
// different ucontext_t offset.
func (u *UContext32) Sigmask() *Sigset64 {
	return (*Sigset64)(unsafe.Pointer(&u[108]))
}

// Siginfo32 is the 32-bit guest siginfo_t: a 128-byte tagged union.
// signo@0, errno@4, code@8 are unambiguous across guest widths; the
// remaining 29 32-bit words at pad[29]@12 are signal-specific
// sub-structs this core does not interpret field-by-field (spec
// §4.4) — callers needing a specific sub-struct (SIGCHLD, SIGILL/
// FPE/SEGV/BUS, SIGALRM/VTALRM) slice Pad() themselves.
type Siginfo32 [SizeSiginfo32]byte

func (s *Siginfo32) Signo() int32     { return int32(binary.LittleEndian.Uint32(s[0:4])) }
func (s *Siginfo32) SetSigno(v int32) { binary.LittleEndian.PutUint32(s[0:4], uint32(v)) }
func (s *Siginfo32) Errno() int32     { return int32(binary.LittleEndian.Uint32(s[4:8])) }
func (s *Siginfo32) SetErrno(v int32) { binary.LittleEndian.PutUint32(s[4:8], uint32(v)) }
func (s *Siginfo32) Code() int32      { return int32(binary.LittleEndian.Uint32(s[8:12])) }
func (s *Siginfo32) SetCode(v int32)  { binary.LittleEndian.PutUint32(s[8:12], uint32(v)) }
func (s *Siginfo32) Pad() []byte      { return s[12:128] }

var (
	_ [SizeStack32 - len(Stack32{})]byte
	_ [len(Stack32{}) - SizeStack32]byte
	_ [SizeMContext32 - len(MContext32{})]byte
	_ [len(MContext32{}) - SizeMContext32]byte
	_ [SizeFPState32 - len(FPState32{})]byte
	_ [len(FPState32{}) - SizeFPState32]byte
	_ [SizeUContext32 - len(UContext32{})]byte
	_ [len(UContext32{}) - SizeUContext32]byte
	_ [SizeSiginfo32 - len(Siginfo32{})]byte
	_ [len(Siginfo32{}) - SizeSiginfo32]byte
)
