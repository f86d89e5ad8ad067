package kernels

import "xlate/pkg/ir"

// VectorZero writes OpSize bytes of zero.
func VectorZero(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	writeScalar(ed, id, size, 0)
	if size == 16 {
		ed.Store.WriteU128(int(id), 0, 0)
	}
}

// VectorImm broadcasts an 8-bit sign-extended immediate across lanes
// of the declared element width.
func VectorImm(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	v := truncU64(uint64(int64(int8(h.Imm))), elemSize)
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		putLaneU(&out, elemSize, lane, v)
	}
	writeVec(ed, id, out)
}

// SplatVector2, SplatVector4 broadcast a scalar source into N lanes of
// the scalar's own width.
func splatVector(ed *ir.ExecData, h *ir.Header, id ir.NodeID, lanes int) {
	size := int(h.ResultSize)
	elemSize := size / lanes
	v := truncU64(readScalar(ed, h.Args[0], elemSize), elemSize)
	var out [16]byte
	for lane := 0; lane < lanes; lane++ {
		putLaneU(&out, elemSize, lane, v)
	}
	writeVec(ed, id, out)
}

func SplatVector2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { splatVector(ed, h, id, 2) }
func SplatVector4(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { splatVector(ed, h, id, 4) }

// VMov copies the low OpSize bytes, zeroing upper bytes if OpSize<16.
func VMov(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		writeVec(ed, id, readVec(ed, h.Args[0]))
		return
	}
	writeScalar(ed, id, size, truncU64(readScalar(ed, h.Args[0], size), size))
}

// VZip, VZip2: interleave the low / high halves of two source vectors.
func vzip(ed *ir.ExecData, h *ir.Header, id ir.NodeID, upperHalf bool) {
	elemSize := elementSizeOf(h)
	srcLanes := 8 / elemSize
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	laneOff := 0
	if upperHalf {
		laneOff = srcLanes
	}
	var out [16]byte
	for i := 0; i < srcLanes; i++ {
		putLaneU(&out, elemSize, 2*i, laneU(a, elemSize, laneOff+i))
		putLaneU(&out, elemSize, 2*i+1, laneU(b, elemSize, laneOff+i))
	}
	writeVec(ed, id, out)
}

func VZip(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { vzip(ed, h, id, false) }
func VZip2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { vzip(ed, h, id, true) }

// VUnZip, VUnZip2: deinterleave even / odd elements of two sources.
func vunzip(ed *ir.ExecData, h *ir.Header, id ir.NodeID, odd bool) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	lanes := numLanes(opSize, elemSize)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	start := 0
	if odd {
		start = 1
	}
	half := lanes / 2
	for i := 0; i < half; i++ {
		putLaneU(&out, elemSize, i, laneU(a, elemSize, start+2*i))
		putLaneU(&out, elemSize, half+i, laneU(b, elemSize, start+2*i))
	}
	writeVec(ed, id, out)
}

func VUnZip(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { vunzip(ed, h, id, false) }
func VUnZip2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { vunzip(ed, h, id, true) }

// VBSL: bitwise select, (src2 & src1) | (src3 & ~src1).
func VBSL(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	mask := readVec(ed, h.Args[0])
	a := readVec(ed, h.Args[1])
	b := readVec(ed, h.Args[2])
	var out [16]byte
	for i := 0; i < 16; i++ {
		out[i] = (a[i] & mask[i]) | (b[i] &^ mask[i])
	}
	writeVec(ed, id, out)
}

// VExtr concatenates (source1 high, source2 low) and shifts right by
// Index*ElementSize*8 bits, returning 128 bits.
func VExtr(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	byteShift := int(h.Index) * elemSize
	hi, lo := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var concat [32]byte
	copy(concat[:16], lo[:])
	copy(concat[16:], hi[:])
	var out [16]byte
	if byteShift < 32 {
		copy(out[:], concat[byteShift:min32(byteShift+16, 32)])
	}
	writeVec(ed, id, out)
}

func min32(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// VTBL1: byte table lookup, zero where the index is out of range.
func VTBL1(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize := int(h.ResultSize)
	table := readVec(ed, h.Args[0])
	idx := readVec(ed, h.Args[1])
	var out [16]byte
	for i := 0; i < opSize; i++ {
		si := idx[i]
		if int(si) < opSize {
			out[i] = table[si]
		}
	}
	writeVec(ed, id, out)
}

// VRev64 reverses elements within each 64-bit lane, at element widths
// 1, 2 and 4.
func VRev64(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	perLane := 8 / elemSize
	var out [16]byte
	groups := opSize / 8
	for g := 0; g < groups; g++ {
		for i := 0; i < perLane; i++ {
			src := g*perLane + i
			dst := g*perLane + (perLane - 1 - i)
			putLaneU(&out, elemSize, dst, laneU(a, elemSize, src))
		}
	}
	writeVec(ed, id, out)
}

// VDupElement broadcasts one lane of source1 (selected by Index) to
// every lane of the destination.
func VDupElement(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	v := laneU(a, elemSize, int(h.Index))
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		putLaneU(&out, elemSize, lane, v)
	}
	writeVec(ed, id, out)
}

// VExtractElement extracts lane Index into the low ElemSize bytes of
// the destination register, zeroing the rest.
func VExtractElement(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	var out [16]byte
	putLaneU(&out, elemSize, 0, laneU(a, elemSize, int(h.Index)))
	writeVec(ed, id, out)
}

// VExtractToGPR extracts lane Index as a plain scalar result.
func VExtractToGPR(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	size := int(h.ResultSize)
	a := readVec(ed, h.Args[0])
	writeScalar(ed, id, size, truncU64(laneU(a, elemSize, int(h.Index)), size))
}

// VInsElement inserts source2's lane 0 into source1's lane Index,
// leaving the other lanes of source1 unchanged.
func VInsElement(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	out := readVec(ed, h.Args[0])
	b := readVec(ed, h.Args[1])
	putLaneU(&out, elemSize, int(h.Index), laneU(b, elemSize, 0))
	writeVec(ed, id, out)
}

// VInsScalarElement inserts a plain scalar source into source1's lane
// Index.
func VInsScalarElement(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	out := readVec(ed, h.Args[0])
	v := truncU64(readScalar(ed, h.Args[1], elemSize), elemSize)
	putLaneU(&out, elemSize, int(h.Index), v)
	writeVec(ed, id, out)
}

// VBitcast, VNot: identity-copy and bitwise inversion of the full
// 128-bit register.
func VBitcast(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	writeVec(ed, id, readVec(ed, h.Args[0]))
}

func VNot(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	a := readVec(ed, h.Args[0])
	var out [16]byte
	for i := range out {
		out[i] = ^a[i]
	}
	writeVec(ed, id, out)
}

// TruncElementPair packs src[0][31:0] and src[1][31:0] into a 64-bit
// result, low then high.
func TruncElementPair(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	a := ed.Store.ReadU32(int(h.Args[0]))
	b := ed.Store.ReadU32(int(h.Args[1]))
	writeScalar(ed, id, 8, uint64(a)|(uint64(b)<<32))
}
