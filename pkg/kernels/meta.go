package kernels

import (
	"time"

	"xlate/pkg/ir"
)

// Constant loads the header's immediate payload into the destination
// slot, truncated to OpSize.
func Constant(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	ed.Store.WriteSized(int(id), size, h.ConstValue[:size])
}

// EntrypointOffset computes (CurrentEntry + Offset) & Mask, Mask being
// 0xFFFFFFFF at OpSize=4 and all-ones at OpSize=8.
func EntrypointOffset(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	size := int(h.ResultSize)
	mask := uint64(0xFFFFFFFF)
	if size == 8 {
		mask = ^uint64(0)
	}
	writeScalar(ed, id, size, (ed.CurrentEntry+uint64(h.EntryOffset))&mask)
}

// InlineConstant, InlineEntrypointOffset are no-ops at interpretation
// time: consumers (the JITs) inline the immediate directly rather than
// materializing it into a slot, so the interpreter's reference copy
// still needs the slot populated the same way Constant/EntrypointOffset
// would for any downstream reader that doesn't special-case them.
func InlineConstant(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	Constant(ed, h, id)
}

func InlineEntrypointOffset(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	EntrypointOffset(ed, h, id)
}

// clockFunc is the source CycleCounter reads from; production builds
// leave it at the default CLOCK_REALTIME read. Golden-vector tests
// that exercise CycleCounter swap it via SetClock for a reproducible
// value, supplementing spec.md §4.3.6 without changing its documented
// production semantics.
var clockFunc = func() int64 { return time.Now().UnixNano() }

// SetClock overrides CycleCounter's time source. Passing nil restores
// the real-clock default.
func SetClock(f func() int64) {
	if f == nil {
		clockFunc = func() int64 { return time.Now().UnixNano() }
		return
	}
	clockFunc = f
}

// CycleCounter returns CLOCK_REALTIME in nanoseconds (or the injected
// clock, see SetClock).
func CycleCounter(ed *ir.ExecData, h *ir.Header, id ir.NodeID) {
	writeScalar(ed, id, int(h.ResultSize), uint64(clockFunc()))
}
