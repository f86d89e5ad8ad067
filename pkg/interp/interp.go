// Package interp implements the opcode dispatcher (spec §4.2,
// component C2): straight-line execution over one IR block via a
// dense opcode-to-kernel table, populated once at init and indexed
// directly by opcode byte.
package interp

import (
	"time"

	"xlate/pkg/ir"
	"xlate/pkg/kernels"
	"xlate/pkg/ssastore"
	"xlate/pkg/xerr"
	"xlate/pkg/xlog"
	"xlate/pkg/xmetrics"
)

// Kernel is the shape every per-opcode function in pkg/kernels
// implements: read sources out of ed.Store, write the result into id.
type Kernel func(ed *ir.ExecData, h *ir.Header, id ir.NodeID)

// dispatchTable is a dense Op -> Kernel lookup, populated once at
// package init so a live block never pays a map lookup per op.
var dispatchTable [opTableSize]Kernel

const opTableSize = 256 * 8 // generous headroom past opCount for future opcodes

func register(op ir.Op, k Kernel) {
	dispatchTable[op] = k
}

func init() {
	register(ir.OpAdd, kernels.Add)
	register(ir.OpSub, kernels.Sub)
	register(ir.OpOr, kernels.Or)
	register(ir.OpAnd, kernels.And)
	register(ir.OpXor, kernels.Xor)
	register(ir.OpAndn, kernels.Andn)
	register(ir.OpNeg, kernels.Neg)
	register(ir.OpNot, kernels.Not)
	register(ir.OpMul, kernels.Mul)
	register(ir.OpUMul, kernels.UMul)
	register(ir.OpDiv, kernels.Div)
	register(ir.OpUDiv, kernels.UDiv)
	register(ir.OpRem, kernels.Rem)
	register(ir.OpURem, kernels.URem)
	register(ir.OpMulH, kernels.MulH)
	register(ir.OpUMulH, kernels.UMulH)

	register(ir.OpLshl, kernels.Lshl)
	register(ir.OpLshr, kernels.Lshr)
	register(ir.OpAshr, kernels.Ashr)
	register(ir.OpRor, kernels.Ror)
	register(ir.OpExtr, kernels.Extr)
	register(ir.OpBfi, kernels.Bfi)
	register(ir.OpBfe, kernels.Bfe)
	register(ir.OpSbfe, kernels.Sbfe)
	register(ir.OpPopcount, kernels.Popcount)
	register(ir.OpFindLSB, kernels.FindLSB)
	register(ir.OpFindMSB, kernels.FindMSB)
	register(ir.OpFindTrailingZeros, kernels.FindTrailingZeros)
	register(ir.OpCountLeadingZeroes, kernels.CountLeadingZeroes)
	register(ir.OpRev, kernels.Rev)
	register(ir.OpPDep, kernels.PDep)
	register(ir.OpPExt, kernels.PExt)
	register(ir.OpLDiv, kernels.LDiv)
	register(ir.OpLUDiv, kernels.LUDiv)
	register(ir.OpLRem, kernels.LRem)
	register(ir.OpLURem, kernels.LURem)

	register(ir.OpSelect, kernels.Select)

	register(ir.OpVAdd, kernels.VAdd)
	register(ir.OpVSub, kernels.VSub)
	register(ir.OpVMul, kernels.VMul)
	register(ir.OpVUQAdd, kernels.VUQAdd)
	register(ir.OpVUQSub, kernels.VUQSub)
	register(ir.OpVSQAdd, kernels.VSQAdd)
	register(ir.OpVSQSub, kernels.VSQSub)
	register(ir.OpVUMin, kernels.VUMin)
	register(ir.OpVSMin, kernels.VSMin)
	register(ir.OpVUMax, kernels.VUMax)
	register(ir.OpVSMax, kernels.VSMax)
	register(ir.OpVUMull, kernels.VUMull)
	register(ir.OpVSMull, kernels.VSMull)
	register(ir.OpVUMull2, kernels.VUMull2)
	register(ir.OpVSMull2, kernels.VSMull2)
	register(ir.OpVUABDL, kernels.VUABDL)
	register(ir.OpVURAvg, kernels.VURAvg)
	register(ir.OpVNeg, kernels.VNeg)
	register(ir.OpVAbs, kernels.VAbs)
	register(ir.OpVPopcount, kernels.VPopcount)
	register(ir.OpVAddP, kernels.VAddP)
	register(ir.OpVFAddP, kernels.VFAddP)
	register(ir.OpVAddV, kernels.VAddV)
	register(ir.OpVUMinV, kernels.VUMinV)

	register(ir.OpVUShl, kernels.VUShl)
	register(ir.OpVUShr, kernels.VUShr)
	register(ir.OpVSShr, kernels.VSShr)
	register(ir.OpVUShlS, kernels.VUShlS)
	register(ir.OpVUShrS, kernels.VUShrS)
	register(ir.OpVSShrS, kernels.VSShrS)
	register(ir.OpVShlI, kernels.VShlI)
	register(ir.OpVUShrI, kernels.VUShrI)
	register(ir.OpVSShrI, kernels.VSShrI)
	register(ir.OpVSLI, kernels.VSLI)
	register(ir.OpVSRI, kernels.VSRI)
	register(ir.OpVUShrNI, kernels.VUShrNI)
	register(ir.OpVUShrNI2, kernels.VUShrNI2)

	register(ir.OpVCMPEQ, kernels.VCMPEQ)
	register(ir.OpVCMPEQZ, kernels.VCMPEQZ)
	register(ir.OpVCMPGT, kernels.VCMPGT)
	register(ir.OpVCMPGTZ, kernels.VCMPGTZ)
	register(ir.OpVCMPLTZ, kernels.VCMPLTZ)
	register(ir.OpVFCMPEQ, kernels.VFCMPEQ)
	register(ir.OpVFCMPNEQ, kernels.VFCMPNEQ)
	register(ir.OpVFCMPLT, kernels.VFCMPLT)
	register(ir.OpVFCMPGT, kernels.VFCMPGT)
	register(ir.OpVFCMPLE, kernels.VFCMPLE)
	register(ir.OpVFCMPORD, kernels.VFCMPORD)
	register(ir.OpVFCMPUNO, kernels.VFCMPUNO)

	register(ir.OpVSXTL, kernels.VSXTL)
	register(ir.OpVUXTL, kernels.VUXTL)
	register(ir.OpVSXTL2, kernels.VSXTL2)
	register(ir.OpVUXTL2, kernels.VUXTL2)
	register(ir.OpVSQXTN, kernels.VSQXTN)
	register(ir.OpVSQXTUN, kernels.VSQXTUN)
	register(ir.OpVSQXTN2, kernels.VSQXTN2)
	register(ir.OpVSQXTUN2, kernels.VSQXTUN2)
	register(ir.OpFloatToGPR_ZS, kernels.FloatToGPR_ZS)
	register(ir.OpFloatToGPR_S, kernels.FloatToGPR_S)
	register(ir.OpFCmp, kernels.FCmp)

	register(ir.OpVectorZero, kernels.VectorZero)
	register(ir.OpVectorImm, kernels.VectorImm)
	register(ir.OpSplatVector2, kernels.SplatVector2)
	register(ir.OpSplatVector4, kernels.SplatVector4)
	register(ir.OpVMov, kernels.VMov)
	register(ir.OpVZip, kernels.VZip)
	register(ir.OpVZip2, kernels.VZip2)
	register(ir.OpVUnZip, kernels.VUnZip)
	register(ir.OpVUnZip2, kernels.VUnZip2)
	register(ir.OpVBSL, kernels.VBSL)
	register(ir.OpVExtr, kernels.VExtr)
	register(ir.OpVTBL1, kernels.VTBL1)
	register(ir.OpVRev64, kernels.VRev64)
	register(ir.OpVDupElement, kernels.VDupElement)
	register(ir.OpVExtractElement, kernels.VExtractElement)
	register(ir.OpVExtractToGPR, kernels.VExtractToGPR)
	register(ir.OpVInsElement, kernels.VInsElement)
	register(ir.OpVInsScalarElement, kernels.VInsScalarElement)
	register(ir.OpVBitcast, kernels.VBitcast)
	register(ir.OpVNot, kernels.VNot)
	register(ir.OpTruncElementPair, kernels.TruncElementPair)

	register(ir.OpVFAdd, kernels.VFAdd)
	register(ir.OpVFSub, kernels.VFSub)
	register(ir.OpVFMul, kernels.VFMul)
	register(ir.OpVFDiv, kernels.VFDiv)
	register(ir.OpVFMin, kernels.VFMin)
	register(ir.OpVFMax, kernels.VFMax)
	register(ir.OpVFRecp, kernels.VFRecp)
	register(ir.OpVFSqrt, kernels.VFSqrt)
	register(ir.OpVFRSqrt, kernels.VFRSqrt)
	register(ir.OpVFNeg, kernels.VFNeg)

	register(ir.OpConstant, kernels.Constant)
	register(ir.OpEntrypointOffset, kernels.EntrypointOffset)
	register(ir.OpInlineConstant, kernels.InlineConstant)
	register(ir.OpInlineEntrypointOffset, kernels.InlineEntrypointOffset)
	register(ir.OpCycleCounter, kernels.CycleCounter)
}

// Interpreter executes IR blocks against a reusable SSA store. One
// Interpreter is not safe for concurrent use; callers running multiple
// guest threads hold one per thread.
type Interpreter struct {
	store *ssastore.Store
	log   *xlog.Logger
}

// Option configures an Interpreter at construction.
type Option func(*Interpreter)

// WithClock injects a deterministic time source for CycleCounter, so
// a golden-vector test exercising it is reproducible. Not used in
// production (the real-clock default applies).
func WithClock(f func() int64) Option {
	return func(*Interpreter) { kernels.SetClock(f) }
}

// New builds an Interpreter with its own SSA store, grown lazily to
// fit whatever block it first executes.
func New(log *xlog.Logger, opts ...Option) *Interpreter {
	in := &Interpreter{store: ssastore.New(0), log: log}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes every header of block in program order against a fresh
// store sized to len(block.Headers), returning that store so the
// caller's terminator logic (branch/call/memory op) can read results
// out of it. currentEntry feeds EntrypointOffset.
func (in *Interpreter) Run(block *ir.Block, currentEntry uint64) (*ssastore.Store, error) {
	start := time.Now()
	in.store.Reset(len(block.Headers))
	ed := &ir.ExecData{Store: in.store, Block: block, CurrentEntry: currentEntry}

	for i := range block.Headers {
		h := &block.Headers[i]
		if int(h.Op) >= len(dispatchTable) || dispatchTable[h.Op] == nil {
			xmetrics.UnknownOpcode.Inc()
			return nil, xerr.NewIRConsistency("interp: unknown or unwired opcode", h.Op, int(h.ResultSize))
		}
		if err := in.dispatch(dispatchTable[h.Op], ed, h, ir.NodeID(i)); err != nil {
			return nil, err
		}
	}
	xmetrics.BlocksExecuted.Inc()
	xmetrics.BlockLatency.Observe(time.Since(start).Seconds())
	return in.store, nil
}

// dispatch recovers a kernel panic (division by zero, an
// out-of-range layout assumption) into a returned error rather than
// crashing the whole executor on one malformed block.
func (in *Interpreter) dispatch(k Kernel, ed *ir.ExecData, h *ir.Header, id ir.NodeID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			xmetrics.KernelPanics.Inc()
			if asErr, ok := r.(error); ok {
				err = asErr
				return
			}
			err = xerr.NewIRConsistency("interp: kernel panic", h.Op, int(h.ResultSize))
			if in.log != nil {
				in.log.Printf("kernel panic recovered: op=%s recover=%v", h.Op, r)
			}
		}
	}()
	k(ed, h, id)
	return nil
}
