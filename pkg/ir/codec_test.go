package ir

import "testing"

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	block := &Block{Headers: []Header{
		{Op: OpConstant, ResultSize: 4, ConstValue: [16]byte{7}},
		{Op: OpAdd, ResultSize: 4, Args: [4]NodeID{0, 0}, Imm: -1},
		{
			Op: OpSelect, ResultSize: 8, CompareSize: 4, Cond: CondSLT,
			FloatCompare: true, FloatKind: FloatDouble, Args: [4]NodeID{1, 1, 0, 0},
		},
	}}

	encoded := EncodeBlock(block)
	decoded, err := DecodeBlock(encoded)
	if err != nil {
		t.Fatalf("DecodeBlock: %v", err)
	}
	if len(decoded.Headers) != len(block.Headers) {
		t.Fatalf("header count mismatch: got %d want %d", len(decoded.Headers), len(block.Headers))
	}
	for i := range block.Headers {
		want, got := block.Headers[i], decoded.Headers[i]
		if want.Op != got.Op || want.ResultSize != got.ResultSize || want.Args != got.Args ||
			want.Imm != got.Imm || want.Cond != got.Cond || want.CompareSize != got.CompareSize ||
			want.FloatCompare != got.FloatCompare || want.FloatKind != got.FloatKind || want.ConstValue != got.ConstValue {
			t.Fatalf("header %d mismatch: got %+v want %+v", i, got, want)
		}
	}
}

func TestDecodeBlockRejectsTruncatedInput(t *testing.T) {
	if _, err := DecodeBlock([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error on truncated input")
	}
}
