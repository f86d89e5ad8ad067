package kernels

import (
	"math"

	"xlate/pkg/ir"
)

// compareElementwise produces an all-ones/zero mask per lane from
// pred. If OpSize equals ElemSize the op is a scalar compare: only the
// low lane is updated and the remaining lanes keep source1's value
// (spec §4.3.5).
func compareElementwise(ed *ir.ExecData, h *ir.Header, id ir.NodeID, pred func(lane int, a, b [16]byte) bool) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	out := a
	lanes := numLanes(opSize, elemSize)
	scalar := opSize == elemSize
	for lane := 0; lane < lanes; lane++ {
		if scalar && lane != 0 {
			continue
		}
		if pred(lane, a, b) {
			putLaneU(&out, elemSize, lane, laneMaskAllOnes(elemSize))
		} else {
			putLaneU(&out, elemSize, lane, 0)
		}
	}
	writeVec(ed, id, out)
}

func VCMPEQ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		return laneU(a, elemSize, lane) == laneU(b, elemSize, lane)
	})
}

func VCMPEQZ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, _ [16]byte) bool {
		return laneU(a, elemSize, lane) == 0
	})
}

func VCMPGT(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		return laneS(a, elemSize, lane) > laneS(b, elemSize, lane)
	})
}

func VCMPGTZ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, _ [16]byte) bool {
		return laneS(a, elemSize, lane) > 0
	})
}

func VCMPLTZ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, _ [16]byte) bool {
		return laneS(a, elemSize, lane) < 0
	})
}

func floatLane(v [16]byte, elemSize, lane int) float64 {
	if elemSize == 4 {
		return float64(math.Float32frombits(uint32(laneU(v, elemSize, lane))))
	}
	return math.Float64frombits(laneU(v, elemSize, lane))
}

// VFCMPEQ ... VFCMPUNO: NaN-aware float compares (spec §4.3.5). EQ is
// false for NaN, NEQ is true for NaN, ORD is true iff neither operand
// is NaN, UNO is its negation.
func VFCMPEQ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return !math.IsNaN(av) && !math.IsNaN(bv) && av == bv
	})
}

func VFCMPNEQ(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return math.IsNaN(av) || math.IsNaN(bv) || av != bv
	})
}

func VFCMPLT(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return !math.IsNaN(av) && !math.IsNaN(bv) && av < bv
	})
}

// VFCMPGT is resolved as a genuine strict greater-than, independent of
// VFCMPLT's code path (see DESIGN.md).
func VFCMPGT(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return !math.IsNaN(av) && !math.IsNaN(bv) && av > bv
	})
}

func VFCMPLE(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return !math.IsNaN(av) && !math.IsNaN(bv) && av <= bv
	})
}

func VFCMPORD(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return !math.IsNaN(av) && !math.IsNaN(bv)
	})
}

func VFCMPUNO(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	elemSize := elementSizeOf(h)
	compareElementwise(ed, h, id, func(lane int, a, b [16]byte) bool {
		av, bv := floatLane(a, elemSize, lane), floatLane(b, elemSize, lane)
		return math.IsNaN(av) || math.IsNaN(bv)
	})
}

// FCmp combines LT/EQ/unordered bits under FlagMask into a packed
// result, at element widths 4 (float) and 8 (double). If either
// operand is NaN, both LT and EQ are set wherever the corresponding
// mask bit is set (spec §4.3.5).
func FCmp(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	var a, b float64
	if h.ElemSize == 4 {
		a = float64(ed.Store.ReadF32(int(h.Args[0])))
		b = float64(ed.Store.ReadF32(int(h.Args[1])))
	} else {
		a = ed.Store.ReadF64(int(h.Args[0]))
		b = ed.Store.ReadF64(int(h.Args[1]))
	}
	var result uint64
	unordered := math.IsNaN(a) || math.IsNaN(b)
	if unordered {
		if h.FlagMask&ir.FCmpFlagLT != 0 {
			result |= uint64(ir.FCmpFlagLT)
		}
		if h.FlagMask&ir.FCmpFlagEQ != 0 {
			result |= uint64(ir.FCmpFlagEQ)
		}
		if h.FlagMask&ir.FCmpFlagUnordered != 0 {
			result |= uint64(ir.FCmpFlagUnordered)
		}
	} else {
		if a < b && h.FlagMask&ir.FCmpFlagLT != 0 {
			result |= uint64(ir.FCmpFlagLT)
		}
		if a == b && h.FlagMask&ir.FCmpFlagEQ != 0 {
			result |= uint64(ir.FCmpFlagEQ)
		}
	}
	writeScalar(ed, id, size, result)
}
