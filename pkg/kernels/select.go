package kernels

import (
	"math"

	"xlate/pkg/ir"
)

// Select picks between Args[2] and Args[3] (OpSize-wide) based on a
// comparison of Args[0]/Args[1] at CompareSize under Cond (spec
// §4.3.4). FloatCompare selects a float/double interpretation of the
// compare sources (width given by FloatKind) instead of an integer one.
func Select(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	var taken bool
	if h.CompareSize == 0 {
		taken = evalCond(h.Cond, ed, h)
	} else {
		taken = evalCondSized(h.Cond, ed, h, int(h.CompareSize))
	}
	if taken {
		writeScalar(ed, id, size, readScalar(ed, h.Args[2], size))
	} else {
		writeScalar(ed, id, size, readScalar(ed, h.Args[3], size))
	}
}

func evalCond(cond ir.CondCode, ed *ir.ExecData, h *ir.Header) bool {
	return evalCondSized(cond, ed, h, int(ed.Block.SourceSize(h.Args[0])))
}

func evalCondSized(cond ir.CondCode, ed *ir.ExecData, h *ir.Header, cmpSize int) bool {
	if h.FloatCompare {
		if h.FloatKind == ir.FloatSingle {
			a := ed.Store.ReadF32(int(h.Args[0]))
			b := ed.Store.ReadF32(int(h.Args[1]))
			return evalFloatCond(cond, float64(a), float64(b))
		}
		a := ed.Store.ReadF64(int(h.Args[0]))
		b := ed.Store.ReadF64(int(h.Args[1]))
		return evalFloatCond(cond, a, b)
	}
	ua := truncU64(readScalar(ed, h.Args[0], cmpSize), cmpSize)
	ub := truncU64(readScalar(ed, h.Args[1], cmpSize), cmpSize)
	sa := asSigned(cmpSize, ua)
	sb := asSigned(cmpSize, ub)
	switch cond {
	case ir.CondEQ:
		return ua == ub
	case ir.CondNE:
		return ua != ub
	case ir.CondUGE:
		return ua >= ub
	case ir.CondULT:
		return ua < ub
	case ir.CondSLT:
		return sa < sb
	case ir.CondSGT:
		return sa > sb
	case ir.CondUGT:
		return ua > ub
	case ir.CondULE:
		return ua <= ub
	case ir.CondSLE:
		return sa <= sb
	case ir.CondSGE:
		return sa >= sb
	default:
		return false
	}
}

func evalFloatCond(cond ir.CondCode, a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return cond == ir.CondNE
	}
	switch cond {
	case ir.CondEQ:
		return a == b
	case ir.CondNE:
		return a != b
	case ir.CondULT, ir.CondSLT:
		return a < b
	case ir.CondUGE, ir.CondSGE:
		return a >= b
	case ir.CondSGT:
		return a > b
	case ir.CondULE, ir.CondSLE:
		return a <= b
	default:
		return false
	}
}
