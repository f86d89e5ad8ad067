package kernels

import (
	"fmt"
	"math/bits"

	"xlate/pkg/ir"
	"xlate/pkg/kernels/u128"
	"xlate/pkg/xerr"
)

func readScalar(ed *ir.ExecData, id ir.NodeID, size int) uint64 {
	switch {
	case size <= 1:
		return uint64(ed.Store.ReadU8(int(id)))
	case size == 2:
		return uint64(ed.Store.ReadU16(int(id)))
	case size <= 4:
		return uint64(ed.Store.ReadU32(int(id)))
	default:
		return ed.Store.ReadU64(int(id))
	}
}

func writeScalar(ed *ir.ExecData, id ir.NodeID, size int, v uint64) {
	switch {
	case size <= 1:
		ed.Store.WriteU8(int(id), uint8(v))
	case size == 2:
		ed.Store.WriteU16(int(id), uint16(v))
	case size <= 4:
		ed.Store.WriteU32(int(id), uint32(v))
	default:
		ed.Store.WriteU64(int(id), v)
	}
}

func read128(ed *ir.ExecData, id ir.NodeID) u128.U128 {
	lo, hi := ed.Store.ReadU128(int(id))
	return u128.FromParts(lo, hi)
}

func write128(ed *ir.ExecData, id ir.NodeID, v u128.U128) {
	ed.Store.WriteU128(int(id), v.Lo, v.Hi)
}

// Add, Sub, Or, And, Xor, Andn, Neg, Not — spec §4.3.2. Supported at
// every scalar width the core's x86 ALU surface actually uses
// (1/2/4/8 bytes); results wrap modulo 2^(OpSize*8).
func Add(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	writeScalar(ed, id, size, truncU64(a+b, size))
}

func Sub(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	writeScalar(ed, id, size, truncU64(a-b, size))
}

func Or(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	writeScalar(ed, id, size, readScalar(ed, h.Args[0], size)|readScalar(ed, h.Args[1], size))
}

func And(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	writeScalar(ed, id, size, readScalar(ed, h.Args[0], size)&readScalar(ed, h.Args[1], size))
}

func Xor(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	writeScalar(ed, id, size, readScalar(ed, h.Args[0], size)^readScalar(ed, h.Args[1], size))
}

// Andn computes a & ~b.
func Andn(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	writeScalar(ed, id, size, truncU64(a&^b, size))
}

func Neg(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	writeScalar(ed, id, size, truncU64(-a, size))
}

// Not masks the inversion to OpSize*8 bits so the upper padding of the
// slot (left zero by the store) stays consistent with a real bitwise
// complement at the declared width.
func Not(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	a := readScalar(ed, h.Args[0], size)
	writeScalar(ed, id, size, truncU64(^a, size))
}

// Mul, UMul — modular multiply. Sizes 4, 8 use native Go multiplication;
// size 16 routes through the u128 helper (spec §4.3.2).
func Mul(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		write128(ed, id, read128(ed, h.Args[0]).Mul(read128(ed, h.Args[1])))
		return
	}
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	writeScalar(ed, id, size, truncU64(a*b, size))
}

func UMul(ed *ir.ExecData, h *ir.Header, id ir.NodeID) { Mul(ed, h, id) }

// checkDivisorNonZero panics with a GuestUndefinedBehaviorError, not an
// IRConsistencyError: a guest divide-by-zero is undefined behavior the
// surrounding executor is expected to guard against with an explicit
// check opcode before dispatch (spec §7.2), not a malformed IR block.
func checkDivisorNonZero(opName string, size int, divisor uint64) {
	if divisor == 0 {
		panic(xerr.NewGuestUndefinedBehavior(fmt.Sprintf("kernels: %s: division by zero (size=%d)", opName, size)))
	}
}

// Div, UDiv, Rem, URem additionally support sizes 1, 2 and 16 (spec
// §4.3.2). Division by zero is undefined at the core layer; the core
// panics loudly rather than silently returning garbage so a missing
// guard upstream is never mistaken for a correct zero/−1 result.
func Div(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		if b.IsZero() {
			checkDivisorNonZero("Div", size, 0)
		}
		q, _ := u128.SDivMod(a, b)
		write128(ed, id, q)
		return
	}
	a := asSigned(size, readScalar(ed, h.Args[0], size))
	b := asSigned(size, readScalar(ed, h.Args[1], size))
	checkDivisorNonZero("Div", size, uint64(b))
	writeScalar(ed, id, size, truncU64(uint64(a/b), size))
}

func UDiv(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		if b.IsZero() {
			checkDivisorNonZero("UDiv", size, 0)
		}
		q, _ := u128.DivMod(a, b)
		write128(ed, id, q)
		return
	}
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	checkDivisorNonZero("UDiv", size, b)
	writeScalar(ed, id, size, truncU64(a/b, size))
}

func Rem(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		if b.IsZero() {
			checkDivisorNonZero("Rem", size, 0)
		}
		_, r := u128.SDivMod(a, b)
		write128(ed, id, r)
		return
	}
	a := asSigned(size, readScalar(ed, h.Args[0], size))
	b := asSigned(size, readScalar(ed, h.Args[1], size))
	checkDivisorNonZero("Rem", size, uint64(b))
	writeScalar(ed, id, size, truncU64(uint64(a%b), size))
}

func URem(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		if b.IsZero() {
			checkDivisorNonZero("URem", size, 0)
		}
		_, r := u128.DivMod(a, b)
		write128(ed, id, r)
		return
	}
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	checkDivisorNonZero("URem", size, b)
	writeScalar(ed, id, size, truncU64(a%b, size))
}

// MulH, UMulH — high half of a 2N*2N->2*2N multiply, at sizes 4, 8 and
// (per the resolved open question, see DESIGN.md) 16.
func MulH(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		negA, negB := a.Sign(), b.Sign()
		ua, ub := a, b
		if negA {
			ua = a.Neg()
		}
		if negB {
			ub = b.Neg()
		}
		_, hi := u128.Mul256(ua, ub)
		if negA != negB {
			hi = hi.Not()
			lo, _ := u128.Mul256(ua, ub)
			if lo.IsZero() {
				hi = hi.Add(u128.From64(1))
			}
		}
		write128(ed, id, hi)
		return
	}
	a := asSigned(size, readScalar(ed, h.Args[0], size))
	b := asSigned(size, readScalar(ed, h.Args[1], size))
	switch size {
	case 4:
		full := int64(a) * int64(b)
		writeScalar(ed, id, size, truncU64(uint64(full>>32), size))
	default: // 8
		hi := mulHiSigned64(a, b)
		writeScalar(ed, id, size, uint64(hi))
	}
}

func UMulH(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	if size == 16 {
		a, b := read128(ed, h.Args[0]), read128(ed, h.Args[1])
		_, hi := u128.Mul256(a, b)
		write128(ed, id, hi)
		return
	}
	a := readScalar(ed, h.Args[0], size)
	b := readScalar(ed, h.Args[1], size)
	switch size {
	case 4:
		writeScalar(ed, id, size, (a*b)>>32)
	default: // 8
		hi, _ := bits.Mul64(a, b)
		writeScalar(ed, id, size, hi)
	}
}

// mulHiSigned64 computes the high 64 bits of a signed 64x64->128 product.
func mulHiSigned64(a, b int64) int64 {
	hi, _ := bits.Mul64(uint64(a), uint64(b))
	res := int64(hi)
	if a < 0 {
		res -= b
	}
	if b < 0 {
		res -= a
	}
	return res
}
