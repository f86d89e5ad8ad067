package sigctx

import "encoding/binary"

// Siginfo64 is the 64-bit guest siginfo_t. 64-bit guests share the
// host's own siginfo_t layout (spec §4.4), so this is sized to match
// the host's 128-byte structure with the same signo/errno/code prefix
// as Siginfo32; the remaining bytes are opaque payload this core
// does not interpret.
type Siginfo64 [SizeSiginfo32]byte

func (s *Siginfo64) Signo() int32     { return int32(binary.LittleEndian.Uint32(s[0:4])) }
func (s *Siginfo64) SetSigno(v int32) { binary.LittleEndian.PutUint32(s[0:4], uint32(v)) }
func (s *Siginfo64) Errno() int32     { return int32(binary.LittleEndian.Uint32(s[4:8])) }
func (s *Siginfo64) SetErrno(v int32) { binary.LittleEndian.PutUint32(s[4:8], uint32(v)) }
func (s *Siginfo64) Code() int32      { return int32(binary.LittleEndian.Uint32(s[8:12])) }
func (s *Siginfo64) SetCode(v int32)  { binary.LittleEndian.PutUint32(s[8:12], uint32(v)) }

// Pad returns the payload past the signo/errno/code trio; on a 64-bit
// guest this is host-layout bytes with a 4-byte hole for 8-byte
// alignment of the union, per the host siginfo_t.
func (s *Siginfo64) Pad() []byte { return s[16:128] }

// TranslateSiginfoToGuest32 implements the host→32-bit-guest siginfo_t
// translation (spec §4.4 op 3). The signo/errno/code trio is
// unambiguous across widths and is copied directly; the rest is a raw
// memcpy of min(len(dst pad), len(src pad)) bytes, since the two
// layouts disagree on everything past the trio and this core does not
// decode signal-specific sub-structs (spec §4.4: "specific signals...
// overlay named sub-structs" the core passes through as bytes).
func TranslateSiginfoToGuest32(dst *Siginfo32, src *Siginfo64) {
	dst.SetSigno(src.Signo())
	dst.SetErrno(src.Errno())
	dst.SetCode(src.Code())
	copyPad(dst.Pad(), src.Pad())
}

// TranslateSiginfoFromGuest32 implements the reverse translation (spec
// §4.4 op 4): guest 32-bit siginfo_t re-raised to the host as a 64-bit
// siginfo_t.
func TranslateSiginfoFromGuest32(dst *Siginfo64, src *Siginfo32) {
	dst.SetSigno(src.Signo())
	dst.SetErrno(src.Errno())
	dst.SetCode(src.Code())
	copyPad(dst.Pad(), src.Pad())
}

func copyPad(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
}

var (
	_ [SizeSiginfo32 - len(Siginfo64{})]byte
	_ [len(Siginfo64{}) - SizeSiginfo32]byte
)
