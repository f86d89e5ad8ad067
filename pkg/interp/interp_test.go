package interp

import (
	"testing"

	"xlate/pkg/ir"
	"xlate/pkg/xerr"
	"xlate/pkg/xlog"
)

func TestRunAddBlock(t *testing.T) {
	block := &ir.Block{Headers: []ir.Header{
		{Op: ir.OpConstant, ResultSize: 4, ConstValue: leImm32(7)},
		{Op: ir.OpConstant, ResultSize: 4, ConstValue: leImm32(35)},
		{Op: ir.OpAdd, ResultSize: 4, Args: [4]ir.NodeID{0, 1}},
	}}
	in := New(nil)
	store, err := in.Run(block, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := store.ReadU32(2); got != 42 {
		t.Fatalf("got %d want 42", got)
	}
}

func TestRunUnknownOpcodeIsIRConsistency(t *testing.T) {
	block := &ir.Block{Headers: []ir.Header{{Op: ir.OpInvalid, ResultSize: 4}}}
	in := New(xlog.New(nil, ""))
	_, err := in.Run(block, 0)
	if !xerr.IsIRConsistency(err) {
		t.Fatalf("expected IRConsistencyError, got %v", err)
	}
}

func TestRunDivideByZeroRecoversAsError(t *testing.T) {
	block := &ir.Block{Headers: []ir.Header{
		{Op: ir.OpConstant, ResultSize: 4, ConstValue: leImm32(10)},
		{Op: ir.OpConstant, ResultSize: 4, ConstValue: leImm32(0)},
		{Op: ir.OpUDiv, ResultSize: 4, Args: [4]ir.NodeID{0, 1}},
	}}
	in := New(nil)
	_, err := in.Run(block, 0)
	if !xerr.IsGuestUndefinedBehavior(err) {
		t.Fatalf("expected GuestUndefinedBehaviorError, got %v", err)
	}
}

func TestCycleCounterUsesInjectedClock(t *testing.T) {
	block := &ir.Block{Headers: []ir.Header{{Op: ir.OpCycleCounter, ResultSize: 8}}}
	in := New(nil, WithClock(func() int64 { return 123456 }))
	defer WithClock(nil)(in)
	store, err := in.Run(block, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := store.ReadU64(0); got != 123456 {
		t.Fatalf("got %d want 123456", got)
	}
}

func leImm32(v uint32) [16]byte {
	var b [16]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	return b
}
