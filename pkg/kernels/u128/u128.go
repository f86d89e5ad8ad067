// Package u128 provides 128-bit integer arithmetic for the handful of IR
// opcodes that need it: 128-bit add/sub/mul, 128/128 division, and the
// 256-bit intermediate product required by unsigned multiply-high at
// OpSize=16. The interpreter keeps this as a small, separately tested
// helper package rather than inlining math/bits call sites at every
// opcode, matching how a 128-bit scalar is treated as a first-class type
// in the original C++ source this core was distilled from.
package u128

import (
	"math/big"
	"math/bits"
)

// U128 is an unsigned 128-bit integer, Lo being the low 64 bits.
type U128 struct {
	Lo, Hi uint64
}

func From64(x uint64) U128 { return U128{Lo: x} }

// FromInt64 sign-extends a 64-bit signed value to 128 bits, for callers
// that need a signed scalar (e.g. a divisor) as a two's-complement
// U128 operand to SDivMod.
func FromInt64(x int64) U128 {
	if x < 0 {
		return U128{Lo: uint64(x), Hi: ^uint64(0)}
	}
	return U128{Lo: uint64(x)}
}

func FromParts(lo, hi uint64) U128 { return U128{Lo: lo, Hi: hi} }

func (a U128) IsZero() bool { return a.Lo == 0 && a.Hi == 0 }

// Sign returns true if the 128-bit two's-complement value is negative.
func (a U128) Sign() bool { return a.Hi>>63 != 0 }

func (a U128) Not() U128 { return U128{Lo: ^a.Lo, Hi: ^a.Hi} }

func (a U128) And(b U128) U128 { return U128{Lo: a.Lo & b.Lo, Hi: a.Hi & b.Hi} }
func (a U128) Or(b U128) U128  { return U128{Lo: a.Lo | b.Lo, Hi: a.Hi | b.Hi} }
func (a U128) Xor(b U128) U128 { return U128{Lo: a.Lo ^ b.Lo, Hi: a.Hi ^ b.Hi} }

func (a U128) Add(b U128) U128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)
	return U128{Lo: lo, Hi: hi}
}

func (a U128) Sub(b U128) U128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return U128{Lo: lo, Hi: hi}
}

// Neg returns the two's-complement negation, mod 2^128.
func (a U128) Neg() U128 { return U128{}.Sub(a) }

func (a U128) Lsh(n uint) U128 {
	n &= 127
	switch {
	case n == 0:
		return a
	case n < 64:
		return U128{Lo: a.Lo << n, Hi: (a.Hi << n) | (a.Lo >> (64 - n))}
	default:
		return U128{Lo: 0, Hi: a.Lo << (n - 64)}
	}
}

func (a U128) Rsh(n uint) U128 {
	n &= 127
	switch {
	case n == 0:
		return a
	case n < 64:
		return U128{Lo: (a.Lo >> n) | (a.Hi << (64 - n)), Hi: a.Hi >> n}
	default:
		return U128{Lo: a.Hi >> (n - 64), Hi: 0}
	}
}

// ARsh is an arithmetic (sign-preserving) right shift.
func (a U128) ARsh(n uint) U128 {
	if !a.Sign() {
		return a.Rsh(n)
	}
	n &= 127
	shifted := a.Rsh(n)
	if n == 0 {
		return shifted
	}
	// Fill the vacated high bits with ones.
	var fillFrom uint
	if n >= 128 {
		fillFrom = 0
	} else {
		fillFrom = 128 - n
	}
	mask := U128{}.Not().Lsh(fillFrom)
	return shifted.Or(mask)
}

// Cmp compares as unsigned 128-bit integers.
func (a U128) Cmp(b U128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Mul returns the low 128 bits of a*b (truncating, matching OpSize=16
// modular multiply semantics).
func (a U128) Mul(b U128) U128 {
	hi, lo := bits.Mul64(a.Lo, b.Lo)
	hi += a.Lo*b.Hi + a.Hi*b.Lo
	return U128{Lo: lo, Hi: hi}
}

// Mul256 returns the full 256-bit product of a and b as (low128, high128).
// Used to resolve UMulH at OpSize=16 to the true upper 128 bits of a
// 128x128->256 multiply, rather than the historically-buggy shortcut of
// taking the high 64 bits of the low 128-bit product (see DESIGN.md).
func Mul256(a, b U128) (lo, hi U128) {
	// The per-limb carry fan-in for a schoolbook 2x2 multiply can exceed
	// the single bit bits.Add64 expects, so the 256-bit product is formed
	// with math/big here rather than hand-propagating multi-bit carries;
	// everything else in this package stays on math/bits.
	ab := a.big()
	bb := b.big()
	prod := new(big.Int).Mul(ab, bb)

	mask := new(big.Int).Lsh(big.NewInt(1), 128)
	loBig := new(big.Int).Mod(prod, mask)
	hiBig := new(big.Int).Rsh(prod, 128)

	return fromBig(loBig), fromBig(hiBig)
}

func (a U128) big() *big.Int {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(a.Hi), 64)
	v.Or(v, new(big.Int).SetUint64(a.Lo))
	return v
}

func fromBig(v *big.Int) U128 {
	mask64 := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(v, mask64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return U128{Lo: lo, Hi: hi}
}

// DivMod performs unsigned 128/128 division via binary long division.
// Panics on division by zero; the interpreter is expected to guard
// against that before dispatching (spec §4.3.2).
func DivMod(a, b U128) (q, r U128) {
	if b.IsZero() {
		panic("u128: division by zero")
	}
	if b.Cmp(From64(1)) == 0 {
		return a, U128{}
	}
	if a.Cmp(b) < 0 {
		return U128{}, a
	}
	var quotient, remainder U128
	for i := 127; i >= 0; i-- {
		remainder = remainder.Lsh(1)
		if bitAt(a, uint(i)) {
			remainder.Lo |= 1
		}
		if remainder.Cmp(b) >= 0 {
			remainder = remainder.Sub(b)
			quotient = setBit(quotient, uint(i))
		}
	}
	return quotient, remainder
}

// SDivMod performs signed 128/128 division and remainder, truncating
// toward zero, matching x86 IDIV semantics.
func SDivMod(a, b U128) (q, r U128) {
	negA, negB := a.Sign(), b.Sign()
	ua, ub := a, b
	if negA {
		ua = a.Neg()
	}
	if negB {
		ub = b.Neg()
	}
	uq, ur := DivMod(ua, ub)
	if negA != negB {
		uq = uq.Neg()
	}
	if negA {
		ur = ur.Neg()
	}
	return uq, ur
}

func bitAt(a U128, i uint) bool {
	if i < 64 {
		return (a.Lo>>i)&1 != 0
	}
	return (a.Hi>>(i-64))&1 != 0
}

func setBit(a U128, i uint) U128 {
	if i < 64 {
		a.Lo |= 1 << i
	} else {
		a.Hi |= 1 << (i - 64)
	}
	return a
}
