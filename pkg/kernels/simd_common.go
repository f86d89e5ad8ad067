package kernels

import (
	"encoding/binary"
	"math"

	"xlate/pkg/ir"
	"xlate/pkg/kernels/u128"
)

// numLanes returns OpSize/ElementSize, the lane count every packed
// kernel iterates (spec §4.3.5).
func numLanes(opSize, elemSize int) int { return opSize / elemSize }

func laneU(full [16]byte, elemSize, lane int) uint64 {
	off := lane * elemSize
	switch elemSize {
	case 1:
		return uint64(full[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(full[off : off+2]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(full[off : off+4]))
	default:
		return binary.LittleEndian.Uint64(full[off : off+8])
	}
}

func laneS(full [16]byte, elemSize, lane int) int64 {
	return asSigned(elemSize, laneU(full, elemSize, lane))
}

func putLaneU(full *[16]byte, elemSize, lane int, v uint64) {
	off := lane * elemSize
	switch elemSize {
	case 1:
		full[off] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(full[off:off+2], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(full[off:off+4], uint32(v))
	default:
		binary.LittleEndian.PutUint64(full[off:off+8], v)
	}
}

func laneMaskAllOnes(elemSize int) uint64 { return maskFor(elemSize) }

// readVec reads the OpSize-wide operand as a full 16-byte register,
// zero-padding any bytes above OpSize for widths below 16.
func readVec(ed *ir.ExecData, id ir.NodeID) [16]byte { return ed.Store.ReadFull(int(id)) }

func writeVec(ed *ir.ExecData, id ir.NodeID, v [16]byte) { ed.Store.WriteFull(int(id), v) }

// elementSizeOf reads ElemSize off the header, defaulting to 1 if unset
// (never valid for a real packed op, but keeps helpers total).
func elementSizeOf(h *ir.Header) int {
	if h.ElemSize == 0 {
		return 1
	}
	return int(h.ElemSize)
}

func satUnsigned(v int64, elemSize int) uint64 {
	maxV := int64(maskFor(elemSize))
	if v < 0 {
		return 0
	}
	if v > maxV {
		return uint64(maxV)
	}
	return uint64(v)
}

func satSigned(v int64, elemSize int) uint64 {
	bitsN := uint(elemSize) * 8
	maxV := int64(1)<<(bitsN-1) - 1
	minV := -(int64(1) << (bitsN - 1))
	if v > maxV {
		v = maxV
	} else if v < minV {
		v = minV
	}
	return truncU64(uint64(v), elemSize)
}

// satSignedAdd64 is VSQAdd's ElemSize==8 path: a+b in native int64
// would itself overflow before satSigned gets a chance to clamp it, so
// overflow is detected by operand-sign test instead (two addends of
// the same sign whose sum comes out the opposite sign overflowed).
func satSignedAdd64(a, b int64) int64 {
	sum := a + b
	switch {
	case a >= 0 && b >= 0 && sum < 0:
		return math.MaxInt64
	case a < 0 && b < 0 && sum >= 0:
		return math.MinInt64
	default:
		return sum
	}
}

// satSignedSub64 is VSQSub's ElemSize==8 path: a-b widened to 128 bits
// so the subtraction itself can never overflow, then clamped down to
// the int64 range.
func satSignedSub64(a, b int64) int64 {
	diff := u128.FromInt64(a).Sub(u128.FromInt64(b))
	if diff.Hi == 0 && int64(diff.Lo) >= 0 {
		return int64(diff.Lo)
	}
	if diff.Hi == ^uint64(0) && int64(diff.Lo) < 0 {
		return int64(diff.Lo)
	}
	if diff.Sign() {
		return math.MinInt64
	}
	return math.MaxInt64
}
