package kernels

import (
	"math"

	"xlate/pkg/ir"
)

// floatBinary runs fn over every float/double lane of Args[0]/Args[1].
// Results follow IEEE-754 default rounding as produced by the host
// FPU; NaN propagation is not intercepted here (spec §4.3.5).
func floatBinary(ed *ir.ExecData, h *ir.Header, id ir.NodeID, fn func(a, b float64) float64) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a, b := readVec(ed, h.Args[0]), readVec(ed, h.Args[1])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		r := fn(floatLane(a, elemSize, lane), floatLane(b, elemSize, lane))
		putLaneU(&out, elemSize, lane, packFloatLane(r, elemSize))
	}
	writeVec(ed, id, out)
}

func floatUnary(ed *ir.ExecData, h *ir.Header, id ir.NodeID, fn func(a float64) float64) {
	opSize, elemSize := int(h.ResultSize), elementSizeOf(h)
	a := readVec(ed, h.Args[0])
	var out [16]byte
	for lane := 0; lane < numLanes(opSize, elemSize); lane++ {
		r := fn(floatLane(a, elemSize, lane))
		putLaneU(&out, elemSize, lane, packFloatLane(r, elemSize))
	}
	writeVec(ed, id, out)
}

func packFloatLane(v float64, elemSize int) uint64 {
	if elemSize == 4 {
		return uint64(math.Float32bits(float32(v)))
	}
	return math.Float64bits(v)
}

func VFAdd(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, func(a, b float64) float64 { return a + b })
}

func VFSub(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, func(a, b float64) float64 { return a - b })
}

func VFMul(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, func(a, b float64) float64 { return a * b })
}

func VFDiv(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, func(a, b float64) float64 { return a / b })
}

func VFMin(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, math.Min)
}

func VFMax(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatBinary(ed, h, id, math.Max)
}

// VFRecp computes 1/a elementwise.
func VFRecp(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatUnary(ed, h, id, func(a float64) float64 { return 1 / a })
}

func VFSqrt(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatUnary(ed, h, id, math.Sqrt)
}

func VFRSqrt(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatUnary(ed, h, id, func(a float64) float64 { return 1 / math.Sqrt(a) })
}

func VFNeg(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	floatUnary(ed, h, id, func(a float64) float64 { return -a })
}
