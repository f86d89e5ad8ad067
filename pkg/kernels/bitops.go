package kernels

import (
	"math/bits"

	"xlate/pkg/ir"
	"xlate/pkg/kernels/u128"
)

// Lshl, Lshr, Ashr — shift count taken modulo OpSize*8 at widths 4, 8
// (spec §4.3.3), matching the modulo behaviour of the x86 shift
// instructions these lower from.
func Lshl(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	n := uint(readScalar(ed, h.Args[1], size)) % bitWidth(size)
	writeScalar(ed, id, size, truncU64(a<<n, size))
}

func Lshr(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	n := uint(readScalar(ed, h.Args[1], size)) % bitWidth(size)
	writeScalar(ed, id, size, truncU64(a, size)>>n)
}

// Ashr preserves the sign bit of the OpSize-wide source.
func Ashr(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := asSigned(size, readScalar(ed, h.Args[0], size))
	n := uint(readScalar(ed, h.Args[1], size)) % bitWidth(size)
	writeScalar(ed, id, size, truncU64(uint64(a>>n), size))
}

// Ror rotates right by count mod OpSize*8.
func Ror(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	w := bitWidth(size)
	a := truncU64(readScalar(ed, h.Args[0], size), size)
	n := uint(readScalar(ed, h.Args[1], size)) % w
	if n == 0 {
		writeScalar(ed, id, size, a)
		return
	}
	rotated := (a >> n) | (a << (w - n))
	writeScalar(ed, id, size, truncU64(rotated, size))
}

// Extr concatenates source1 (high) and source2 (low) into a 2*OpSize
// value and right-shifts by the immediate LSB, returning the low
// OpSize bytes.
func Extr(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	hi := truncU64(readScalar(ed, h.Args[0], size), size)
	lo := truncU64(readScalar(ed, h.Args[1], size), size)
	lsb := uint(h.Lsb)
	if lsb == 0 {
		writeScalar(ed, id, size, lo)
		return
	}
	w := bitWidth(size)
	var result uint64
	if lsb >= w {
		result = hi >> (lsb - w)
	} else {
		result = (lo >> lsb) | (hi << (w - lsb))
	}
	writeScalar(ed, id, size, truncU64(result, size))
}

func fieldMask(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Bfi: (src1 & ~(mask<<lsb)) | ((src2 & mask) << lsb).
func Bfi(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src1 := readScalar(ed, h.Args[0], size)
	src2 := readScalar(ed, h.Args[1], size)
	mask := fieldMask(h.Width)
	lsb := uint(h.Lsb)
	result := (src1 &^ (mask << lsb)) | ((src2 & mask) << lsb)
	writeScalar(ed, id, size, truncU64(result, size))
}

// Bfe: zero-extending bit-field extract.
func Bfe(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := readScalar(ed, h.Args[0], size)
	mask := fieldMask(h.Width)
	result := (src >> h.Lsb) & mask
	writeScalar(ed, id, size, truncU64(result, size))
}

// Sbfe: sign-extending bit-field extract via a shift-left/shift-right
// pair on a 64-bit signed value.
func Sbfe(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := int64(readScalar(ed, h.Args[0], size))
	shift := uint(64 - (int(h.Width) + int(h.Lsb)))
	result := (src << shift) >> (shift + uint(h.Lsb))
	writeScalar(ed, id, size, truncU64(uint64(result), size))
}

// Popcount counts set bits in the full 64-bit source regardless of OpSize.
func Popcount(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := ed.Store.ReadU64(int(h.Args[0]))
	writeScalar(ed, id, size, uint64(popcount64(src)))
}

// FindLSB: position of the lowest set bit, minus one; all-ones on zero.
func FindLSB(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := truncU64(readScalar(ed, h.Args[0], size), size)
	if src == 0 {
		writeScalar(ed, id, size, truncU64(^uint64(0), size))
		return
	}
	writeScalar(ed, id, size, uint64(bits.TrailingZeros64(src)))
}

// FindMSB: OpSize*8 - leading_zeros(src) - 1; OpSize*8-1 on zero.
func FindMSB(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	w := bitWidth(size)
	src := truncU64(readScalar(ed, h.Args[0], size), size)
	if src == 0 {
		writeScalar(ed, id, size, uint64(w)-1)
		return
	}
	lz := bits.LeadingZeros64(src) - int(64-w)
	writeScalar(ed, id, size, uint64(int(w)-lz-1))
}

// FindTrailingZeros counts at the source's declared size.
func FindTrailingZeros(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := truncU64(readScalar(ed, h.Args[0], size), size)
	if src == 0 {
		writeScalar(ed, id, size, uint64(size)*8)
		return
	}
	writeScalar(ed, id, size, uint64(bits.TrailingZeros64(src)))
}

func CountLeadingZeroes(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	w := bitWidth(size)
	src := truncU64(readScalar(ed, h.Args[0], size), size)
	lz := bits.LeadingZeros64(src) - int(64-w)
	writeScalar(ed, id, size, uint64(lz))
}

// Rev byte-swaps the OpSize-wide source.
func Rev(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	src := truncU64(readScalar(ed, h.Args[0], size), size)
	var out uint64
	for i := 0; i < size; i++ {
		b := (src >> (uint(i) * 8)) & 0xFF
		out |= b << (uint(size-1-i) * 8)
	}
	writeScalar(ed, id, size, out)
}

// PDep: BMI2 parallel bit deposit, sizes 4 and 8.
func PDep(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	x := truncU64(readScalar(ed, h.Args[0], size), size)
	mask := truncU64(readScalar(ed, h.Args[1], size), size)
	var result uint64
	srcBit := 0
	for pos := 0; pos < size*8; pos++ {
		if mask&(1<<uint(pos)) != 0 {
			if x&(1<<uint(srcBit)) != 0 {
				result |= 1 << uint(pos)
			}
			srcBit++
		}
	}
	writeScalar(ed, id, size, result)
}

// PExt: BMI2 parallel bit extract, sizes 4 and 8.
func PExt(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	x := truncU64(readScalar(ed, h.Args[0], size), size)
	mask := truncU64(readScalar(ed, h.Args[1], size), size)
	var result uint64
	dstBit := 0
	for pos := 0; pos < size*8; pos++ {
		if mask&(1<<uint(pos)) != 0 {
			if x&(1<<uint(pos)) != 0 {
				result |= 1 << uint(dstBit)
			}
			dstBit++
		}
	}
	writeScalar(ed, id, size, result)
}

// LDiv, LUDiv, LRem, LURem: "long" division over a 2*OpSize dividend
// formed from source1 (low) and source2 (high), divided by the
// OpSize-wide source3. Supported at OpSize 2 (32/16), 4 (64/32) and 8
// (128/64, via the u128 package).
func LUDiv(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	lo, hi := readScalar(ed, h.Args[0], size), readScalar(ed, h.Args[1], size)
	divisor := truncU64(readScalar(ed, h.Args[2], size), size)
	checkDivisorNonZero("LUDiv", size, divisor)
	if size == 8 {
		dividend := u128.FromParts(truncU64(lo, size), truncU64(hi, size))
		q, _ := u128.DivMod(dividend, u128.From64(divisor))
		writeScalar(ed, id, size, q.Lo)
		return
	}
	dividend := (truncU64(hi, size) << bitWidth(size)) | truncU64(lo, size)
	writeScalar(ed, id, size, truncU64(dividend/divisor, size))
}

func LURem(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	lo, hi := readScalar(ed, h.Args[0], size), readScalar(ed, h.Args[1], size)
	divisor := truncU64(readScalar(ed, h.Args[2], size), size)
	checkDivisorNonZero("LURem", size, divisor)
	if size == 8 {
		dividend := u128.FromParts(truncU64(lo, size), truncU64(hi, size))
		_, r := u128.DivMod(dividend, u128.From64(divisor))
		writeScalar(ed, id, size, r.Lo)
		return
	}
	dividend := (truncU64(hi, size) << bitWidth(size)) | truncU64(lo, size)
	writeScalar(ed, id, size, truncU64(dividend%divisor, size))
}

// LDiv, LRem sign-extend the divisor; the dividend halves are taken as
// given (the caller already encodes the signed 2*OpSize dividend
// across the lo/hi pair).
func LDiv(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	lo, hi := readScalar(ed, h.Args[0], size), readScalar(ed, h.Args[1], size)
	divisor := asSigned(size, readScalar(ed, h.Args[2], size))
	checkDivisorNonZero("LDiv", size, uint64(divisor))
	if size == 8 {
		dividend := u128.FromParts(truncU64(lo, size), truncU64(hi, size))
		q, _ := u128.SDivMod(dividend, u128.FromInt64(divisor))
		writeScalar(ed, id, size, q.Lo)
		return
	}
	combined := (truncU64(hi, size) << bitWidth(size)) | truncU64(lo, size)
	dividend := int64(signExtend64(2*size, combined))
	writeScalar(ed, id, size, truncU64(uint64(dividend/divisor), size))
}

func LRem(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	lo, hi := readScalar(ed, h.Args[0], size), readScalar(ed, h.Args[1], size)
	divisor := asSigned(size, readScalar(ed, h.Args[2], size))
	checkDivisorNonZero("LRem", size, uint64(divisor))
	if size == 8 {
		dividend := u128.FromParts(truncU64(lo, size), truncU64(hi, size))
		_, r := u128.SDivMod(dividend, u128.FromInt64(divisor))
		writeScalar(ed, id, size, r.Lo)
		return
	}
	combined := (truncU64(hi, size) << bitWidth(size)) | truncU64(lo, size)
	dividend := int64(signExtend64(2*size, combined))
	writeScalar(ed, id, size, truncU64(uint64(dividend%divisor), size))
}
