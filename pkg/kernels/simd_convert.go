package kernels

import (
	"math"

	"xlate/pkg/ir"
)

// widen runs the VSXTL/VUXTL family: widen the chosen half of the
// source by 2x at the given element width (2, 4 or 8).
func widen(ed *ir.ExecData, h *ir.Header, id ir.NodeID, signed, upperHalf bool) {
	elemSize := elementSizeOf(h)
	srcLanes := 8 / elemSize
	a := readVec(ed, h.Args[0])
	laneOff := 0
	if upperHalf {
		laneOff = srcLanes
	}
	var out [16]byte
	for lane := 0; lane < srcLanes; lane++ {
		srcLane := lane + laneOff
		var v uint64
		if signed {
			v = uint64(laneS(a, elemSize, srcLane))
		} else {
			v = laneU(a, elemSize, srcLane)
		}
		putLaneU(&out, elemSize*2, lane, truncU64(v, elemSize*2))
	}
	writeVec(ed, id, out)
}

func VSXTL(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { widen(ed, h, id, true, false) }
func VUXTL(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { widen(ed, h, id, false, false) }
func VSXTL2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { widen(ed, h, id, true, true) }
func VUXTL2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { widen(ed, h, id, false, true) }

// narrowSat runs the VSQXTN/VSQXTUN family: saturating narrow halving
// the element width. The 2 variants write the upper half of the
// destination and preserve source1 in the lower half.
func narrowSat(ed *ir.ExecData, h *ir.Header, id ir.NodeID, toUnsigned, upperHalf bool) {
	srcElem := elementSizeOf(h)
	dstElem := srcElem / 2
	srcLanes := 8 / dstElem
	var out [16]byte
	var src [16]byte
	laneOff := 0
	if upperHalf {
		out = readVec(ed, h.Args[0])
		src = readVec(ed, h.Args[1])
		laneOff = srcLanes
	} else {
		src = readVec(ed, h.Args[0])
	}
	for lane := 0; lane < srcLanes; lane++ {
		v := laneS(src, srcElem, lane)
		var sat uint64
		if toUnsigned {
			sat = satUnsigned(v, dstElem)
		} else {
			sat = satSigned(v, dstElem)
		}
		putLaneU(&out, dstElem, laneOff+lane, sat)
	}
	writeVec(ed, id, out)
}

func VSQXTN(ed *ir.ExecData, h *ir.Header, id ir.NodeID)   { narrowSat(ed, h, id, false, false) }
func VSQXTUN(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { narrowSat(ed, h, id, true, false) }
func VSQXTN2(ed *ir.ExecData, h *ir.Header, id ir.NodeID)  { narrowSat(ed, h, id, false, true) }
func VSQXTUN2(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { narrowSat(ed, h, id, true, true) }

// FloatToGPR_ZS: truncating float/double -> signed integer.
func FloatToGPR_ZS(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	v := readSourceFloat(ed, h)
	writeScalar(ed, id, size, truncU64(uint64(int64(math.Trunc(v))), size))
}

// FloatToGPR_S: round-to-nearest float/double -> signed integer.
func FloatToGPR_S(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	v := readSourceFloat(ed, h)
	writeScalar(ed, id, size, truncU64(uint64(int64(math.RoundToEven(v))), size))
}

func readSourceFloat(ed *ir.ExecData, h *ir.Header) float64 {
	if h.FloatKind == ir.FloatSingle {
		return float64(ed.Store.ReadF32(int(h.Args[0])))
	}
	return ed.Store.ReadF64(int(h.Args[0]))
}
