package kernels

import (
	"math"

	"xlate/pkg/ir"
)

// binaryElementwise runs fn over every lane of the OpSize/ElemSize
// packed operands at Args[0], Args[1] and writes the packed result.
func binaryElementwise(ed *ir.ExecData, h *ir.Header, id ir.NodeID, fn func(a, b uint64) uint64) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		putLaneU(&out, elemSize, lane, truncU64(fn(laneU(a, elemSize, lane), laneU(b, elemSize, lane)), elemSize))
	}
	writeVec(ed, id, out)
}

func binaryElementwiseSigned(ed *ir.ExecData, h *ir.Header, id ir.NodeID, fn func(a, b int64) uint64) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		putLaneU(&out, elemSize, lane, fn(laneS(a, elemSize, lane), laneS(b, elemSize, lane)))
	}
	writeVec(ed, id, out)
}

func unaryElementwise(ed *ir.ExecData, h *ir.Header, id ir.NodeID, fn func(a uint64) uint64) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		putLaneU(&out, elemSize, lane, truncU64(fn(laneU(a, elemSize, lane)), elemSize))
	}
	writeVec(ed, id, out)
}

func VAdd(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 { return a + b })
}

func VSub(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 { return a - b })
}

func VMul(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 { return a * b })
}

// VUQAdd, VUQSub: unsigned saturating add/sub.
func VUQAdd(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 {
		sum := a + b
		if sum < a || sum > maskFor(elemSize) {
			return maskFor(elemSize)
		}
		return sum
	})
}

func VUQSub(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 {
		if b > a {
			return 0
		}
		return a - b
	})
}

// VSQAdd, VSQSub: signed saturating add/sub. At ElemSize 1/2/4 the
// lane arithmetic fits comfortably inside int64, so computing in int64
// and clamping with satSigned afterward is exact; at ElemSize 8 the
// lane arithmetic itself is int64, so it can overflow before satSigned
// ever sees the result, and needs its own overflow-safe path.
func VSQAdd(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	if elemSize == 8 {
		binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 { return uint64(satSignedAdd64(a, b)) })
		return
	}
	binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 { return satSigned(a+b, elemSize) })
}

func VSQSub(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	if elemSize == 8 {
		binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 { return uint64(satSignedSub64(a, b)) })
		return
	}
	binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 { return satSigned(a-b, elemSize) })
}

func VUMin(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 {
		if a < b {
			return a
		}
		return b
	})
}

func VSMin(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 {
		if a < b {
			return truncU64(uint64(a), elemSize)
		}
		return truncU64(uint64(b), elemSize)
	})
}

func VUMax(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 {
		if a > b {
			return a
		}
		return b
	})
}

func VSMax(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	binaryElementwiseSigned(ed, h, id, func(a, b int64) uint64 {
		if a > b {
			return truncU64(uint64(a), elemSize)
		}
		return truncU64(uint64(b), elemSize)
	})
}

// widenMull runs a widening elementwise multiply over half of each
// 16-byte source: the low 8 bytes unless upperHalf is set, in which
// case the high 8 bytes (VUMull2/VSMull2).
func widenMull(ed *ir.ExecData, h *ir.Header, id ir.NodeID, signed, upperHalf bool) {
	elemSize := elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	laneOff := 0
	if upperHalf {
		laneOff = 8 / elemSize
	}
	lanes := 8 / elemSize
	var out [16]byte
	for lane := 0; lane < lanes; lane++ {
		srcLane := lane + laneOff
		var prod uint64
		if signed {
			prod = uint64(laneS(a, elemSize, srcLane) * laneS(b, elemSize, srcLane))
		} else {
			prod = laneU(a, elemSize, srcLane) * laneU(b, elemSize, srcLane)
		}
		putLaneU(&out, elemSize*2, lane, truncU64(prod, elemSize*2))
	}
	writeVec(ed, id, out)
}

func VUMull(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { widenMull(ed, h, id, false, false) }
func VSMull(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { widenMull(ed, h, id, true, false) }
func VUMull2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { widenMull(ed, h, id, false, true) }
func VSMull2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { widenMull(ed, h, id, true, true) }

// VUABDL: unsigned absolute-difference widening, low half.
func VUABDL(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	lanes := 8 / elemSize
	var out [16]byte
	for lane := 0; lane < lanes; lane++ {
		av, bv := laneU(a, elemSize, lane), laneU(b, elemSize, lane)
		var diff uint64
		if av > bv {
			diff = av - bv
		} else {
			diff = bv - av
		}
		putLaneU(&out, elemSize*2, lane, truncU64(diff, elemSize*2))
	}
	writeVec(ed, id, out)
}

// VURAvg: (a+b+1)>>1 at widths 1 and 2.
func VURAvg(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	binaryElementwise(ed, h, id, func(a, b uint64) uint64 { return (a + b + 1) >> 1 })
}

func VNeg(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	unaryElementwise(ed, h, id, func(a uint64) uint64 { return -a })
}

func VAbs(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	opSize := int(h.ResultSize)
	a := readVec(ed, h.Args[0])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		v := laneS(a, elemSize, lane)
		if v < 0 {
			v = -v
		}
		putLaneU(&out, elemSize, lane, truncU64(uint64(v), elemSize))
	}
	writeVec(ed, id, out)
}

func VPopcount(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	unaryElementwise(ed, h, id, func(a uint64) uint64 { return uint64(popcount64(truncU64(a, elemSize))) })
}

// VAddP: pair-add across two source vectors — lane i of the result is
// source1[2i]+source1[2i+1] for the first half, source2[...] for the
// second half, the AArch64 ADDP convention.
func VAddP(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	lanes := numLanes(opSize, elemSize)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	half := lanes / 2
	for i := 0; i < half; i++ {
		putLaneU(&out, elemSize, i, truncU64(laneU(a, elemSize, 2*i)+laneU(a, elemSize, 2*i+1), elemSize))
		putLaneU(&out, elemSize, half+i, truncU64(laneU(b, elemSize, 2*i)+laneU(b, elemSize, 2*i+1), elemSize))
	}
	writeVec(ed, id, out)
}

// VFAddP is VAddP's floating-point sibling, at element widths 4 and 8.
func VFAddP(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	lanes := numLanes(opSize, elemSize)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	half := lanes / 2
	for i := 0; i < half; i++ {
		putLaneU(&out, elemSize, i, floatLaneAdd(a, elemSize, 2*i, 2*i+1))
		putLaneU(&out, elemSize, half+i, floatLaneAdd(b, elemSize, 2*i, 2*i+1))
	}
	writeVec(ed, id, out)
}

func floatLaneAdd(v [16]byte, elemSize, i, j int) uint64 {
	if elemSize == 4 {
		r := math.Float32frombits(uint32(laneU(v, elemSize, i))) + math.Float32frombits(uint32(laneU(v, elemSize, j)))
		return uint64(math.Float32bits(r))
	}
	r := math.Float64frombits(laneU(v, elemSize, i)) + math.Float64frombits(laneU(v, elemSize, j))
	return math.Float64bits(r)
}

// VAddV, VUMinV: horizontal reduction across all lanes to a single
// scalar of the element width.
func VAddV(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	var sum uint64
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		sum += laneU(a, elemSize, lane)
	}
	writeScalar(ed, id, elemSize, truncU64(sum, elemSize))
}

func VUMinV(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	min := laneU(a, elemSize, 0)
	for lane := 1; lane < numLanes(opSize, elemSize); lane++ {
		if v := laneU(a, elemSize, lane); v < min {
			min = v
		}
	}
	writeScalar(ed, id, elemSize, min)
}
