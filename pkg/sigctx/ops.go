package sigctx

// MachineState64 is the internal x86_64 machine-state representation
// this package packs into / unpacks out of a guest ucontext_t. The
// decoder/interpreter side of the core (out of scope here) is the
// producer/consumer of this shape; sigctx only knows how to marshal
// it to and from the host ABI.
type MachineState64 struct {
	GReg    [numGReg64]uint64
	FPState FXSave64
	UCFlags uint64
}

// PackUContext64 implements guest context marshalling op 1 (spec
// §4.4): pack internal state into a guest ucontext_t at signal
// delivery. altStack and mask are copied in verbatim; ms.FPState is
// not written here: the caller places it in guest memory and passes
// that address as fpregsAddr, which goes into the fpregs-ptr slot, mirroring
// the host kernel's convention of the mcontext_t fpregs field
// pointing at an FXSAVE area embedded later in the same signal frame.
func PackUContext64(dst *UContext64, ms *MachineState64, altStack Stack64, mask Sigset64, fpregsAddr uint64) {
	dst.SetFlags(ms.UCFlags)
	dst.SetLink(0)
	*dst.Stack() = altStack
	mc := dst.MContext()
	for i := 0; i < numGReg64; i++ {
		mc.SetGReg(i, ms.GReg[i])
	}
	mc.SetFPRegsPtr(fpregsAddr)
	*dst.Sigmask() = mask
}

// UnpackUContext64 implements guest context marshalling op 2 (spec
// §4.4): unpack a guest ucontext_t, as restored by the guest's
// sigreturn, back into internal machine state. fpstate is the FXSAVE
// block the caller has already read from guest memory at the
// mcontext's fpregs-ptr (dereferencing a guest pointer is the
// surrounding executor's job, not this package's).
func UnpackUContext64(src *UContext64, fpstate FXSave64) (*MachineState64, Sigset64) {
	ms := &MachineState64{UCFlags: src.Flags(), FPState: fpstate}
	mc := src.MContext()
	for i := 0; i < numGReg64; i++ {
		ms.GReg[i] = mc.GReg(i)
	}
	return ms, *src.Sigmask()
}

// MachineState32 is the 32-bit guest's internal machine-state shape.
type MachineState32 struct {
	GReg    [numGReg32]uint32
	FPState FPState32
}

// PackUContext32 mirrors PackUContext64 for 32-bit guests.
func PackUContext32(dst *UContext32, ms *MachineState32, altStack Stack32, mask Sigset64, fpregsAddr uint32) {
	dst.SetFlags(0)
	dst.SetLink(0)
	*dst.Stack() = altStack
	mc := dst.MContext()
	for i := 0; i < numGReg32; i++ {
		mc.SetGReg(i, ms.GReg[i])
	}
	mc.SetFPRegs(fpregsAddr)
	*dst.Sigmask() = mask
}

// UnpackUContext32 mirrors UnpackUContext64 for 32-bit guests.
func UnpackUContext32(src *UContext32, fpstate FPState32) (*MachineState32, Sigset64) {
	ms := &MachineState32{FPState: fpstate}
	mc := src.MContext()
	for i := 0; i < numGReg32; i++ {
		ms.GReg[i] = mc.GReg(i)
	}
	return ms, *src.Sigmask()
}
