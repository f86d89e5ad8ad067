// Package ir defines the IR block model the interpreter consumes: node
// ids, opcode tags, operation headers and their opcode-specific
// immediate fields. The decoder and builder that produce a Block are
// external collaborators (spec §1); this package only describes the
// shape they hand to the dispatcher.
package ir

import "xlate/pkg/ssastore"

// NodeID is an opaque dense index identifying a producer within the
// currently executing Block. Node ids are valid only for that block.
type NodeID int32

// CondCode selects the comparison predicate for the Select opcode.
type CondCode uint8

const (
	CondEQ CondCode = iota
	CondNE
	CondUGE
	CondULT
	CondSLT
	CondSGT
	CondUGT
	CondULE
	CondSLE
	CondSGE
)

// FloatKind distinguishes a scalar float compare/convert's operand width.
type FloatKind uint8

const (
	FloatSingle FloatKind = iota
	FloatDouble
)

// FCmp flag-mask bits (spec §4.3.5).
const (
	FCmpFlagLT uint8 = 1 << iota
	FCmpFlagEQ
	FCmpFlagUnordered
)

// Op is the opcode tag. Grouped in the order spec §4.3 introduces them.
type Op uint16

const (
	OpInvalid Op = iota

	// Scalar integer ALU (§4.3.2)
	OpAdd
	OpSub
	OpOr
	OpAnd
	OpXor
	OpAndn
	OpNeg
	OpNot
	OpMul
	OpUMul
	OpDiv
	OpUDiv
	OpRem
	OpURem
	OpMulH
	OpUMulH

	// Shifts and bit manipulation (§4.3.3)
	OpLshl
	OpLshr
	OpAshr
	OpRor
	OpExtr
	OpBfi
	OpBfe
	OpSbfe
	OpPopcount
	OpFindLSB
	OpFindMSB
	OpFindTrailingZeros
	OpCountLeadingZeroes
	OpRev
	OpPDep
	OpPExt
	OpLDiv
	OpLUDiv
	OpLRem
	OpLURem

	// Select / condition tests (§4.3.4)
	OpSelect

	// Packed SIMD integer (§4.3.5)
	OpVAdd
	OpVSub
	OpVMul
	OpVUQAdd
	OpVUQSub
	OpVSQAdd
	OpVSQSub
	OpVUMin
	OpVSMin
	OpVUMax
	OpVSMax
	OpVUMull
	OpVSMull
	OpVUMull2
	OpVSMull2
	OpVUABDL
	OpVURAvg
	OpVNeg
	OpVAbs
	OpVPopcount
	OpVAddP
	OpVFAddP
	OpVAddV
	OpVUMinV

	OpVUShl
	OpVUShr
	OpVSShr
	OpVUShlS
	OpVUShrS
	OpVSShrS
	OpVShlI
	OpVUShrI
	OpVSShrI
	OpVSLI
	OpVSRI
	OpVUShrNI
	OpVUShrNI2

	OpVCMPEQ
	OpVCMPEQZ
	OpVCMPGT
	OpVCMPGTZ
	OpVCMPLTZ
	OpVFCMPEQ
	OpVFCMPNEQ
	OpVFCMPLT
	OpVFCMPGT
	OpVFCMPLE
	OpVFCMPORD
	OpVFCMPUNO

	OpVSXTL
	OpVUXTL
	OpVSXTL2
	OpVUXTL2
	OpVSQXTN
	OpVSQXTUN
	OpVSQXTN2
	OpVSQXTUN2
	OpFloatToGPR_ZS
	OpFloatToGPR_S
	OpFCmp

	OpVectorZero
	OpVectorImm
	OpSplatVector2
	OpSplatVector4
	OpVMov
	OpVZip
	OpVZip2
	OpVUnZip
	OpVUnZip2
	OpVBSL
	OpVExtr
	OpVTBL1
	OpVRev64
	OpVDupElement
	OpVExtractElement
	OpVExtractToGPR
	OpVInsElement
	OpVInsScalarElement
	OpVBitcast
	OpVNot
	OpTruncElementPair

	OpVFAdd
	OpVFSub
	OpVFMul
	OpVFDiv
	OpVFMin
	OpVFMax
	OpVFRecp
	OpVFSqrt
	OpVFRSqrt
	OpVFNeg

	// Meta / cheap kernels (§4.3.6)
	OpConstant
	OpEntrypointOffset
	OpInlineConstant
	OpInlineEntrypointOffset
	OpCycleCounter

	opCount
)

// Header is one IR operation: an opcode tag, sizing, source references
// and an opcode-specific immediate payload. Real bytecode overlays the
// immediate payload by opcode family to save space; since this package
// models an already-decoded in-memory IR rather than a wire format, the
// payload is kept as one flat struct of named fields instead of a union
// — each opcode only reads the subset of fields its family documents.
type Header struct {
	Op Op

	// ResultSize is OpSize: the result byte width in {1,2,4,8,16}.
	ResultSize uint8
	// ElemSize is the per-lane byte width for vector opcodes, in {1,2,4,8}.
	ElemSize uint8

	// Args are node-id references to predecessor operations, in
	// opcode-defined order (e.g. Select's Args[0]/Args[1] are the
	// compare sources, Args[2]/Args[3] the selected values).
	Args [4]NodeID

	// Imm is a generic signed immediate: shift amounts, lane indices and
	// the like, per opcode.
	Imm int64

	Cond        CondCode
	CompareSize uint8
	// FloatCompare selects a float/double interpretation of Select's
	// compare sources instead of an integer one; FloatKind then picks
	// single vs double width.
	FloatCompare bool
	FloatKind    FloatKind

	Lsb   uint8 // bit-field LSB (Extr/Bfi/Bfe/Sbfe)
	Width uint8 // bit-field width; 64 means all-ones (Bfi/Bfe/Sbfe)
	Mask  uint64

	Index    uint8 // lane index (extract/insert/shuffle)
	BitShift uint8 // immediate shift-by count (VShlI family)
	FlagMask uint8 // FCmp flag mask bits

	// EntryOffset is EntrypointOffset's Offset immediate.
	EntryOffset int64
	// ConstValue backs Constant/InlineConstant (read as the raw 128-bit
	// little-endian payload, low ResultSize bytes significant).
	ConstValue [16]byte
}

// Block is an immutable, topologically ordered sequence of operation
// headers: one IR basic block's worth of value-producing instructions.
// Control flow, memory access and calls are block terminators handled
// by the surrounding executor (spec §4.2) and are not represented here.
type Block struct {
	Headers []Header
}

// SourceSize returns the byte width an already-written node produced,
// used by kernels that need a predecessor's declared size rather than
// their own ResultSize (Select, when its CompareSize is 0).
func (b *Block) SourceSize(id NodeID) uint8 {
	return b.Headers[id].ResultSize
}

// ExecData is the per-thread state passed to every kernel: the SSA
// store being filled in, the block being executed (for looking up a
// source node's declared byte size), and the guest RIP of the block
// head used by EntrypointOffset (spec §3 "Execution data").
type ExecData struct {
	Store        *ssastore.Store
	Block        *Block
	CurrentEntry uint64
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Op(?)"
}
