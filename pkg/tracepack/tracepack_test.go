package tracepack

import (
	"bytes"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("block-trace-segment-"), 200)
	compressed, err := Compress(original)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed) >= len(original) {
		t.Fatalf("expected compression to shrink repetitive input: %d >= %d", len(compressed), len(original))
	}
	got, err := Decompress(compressed, len(original))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("round trip mismatch")
	}
}

func TestCompressLevelRoundTrip(t *testing.T) {
	original := []byte("short trace segment")
	compressed, err := CompressLevel(original, 19)
	if err != nil {
		t.Fatalf("CompressLevel: %v", err)
	}
	got, err := Decompress(compressed, 0)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("round trip mismatch")
	}
}
