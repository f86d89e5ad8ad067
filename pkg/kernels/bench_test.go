package kernels

import (
	"testing"

	"github.com/klauspost/cpuid/v2"

	"xlate/pkg/ir"
)

// hostSIMDLevel names the host's detected SIMD feature level, logged
// once per benchmark run so a go test -bench profile is reproducible
// against the machine it ran on; it plays no role in kernel
// correctness, which is pure Go arithmetic independent of the host CPU.
var hostSIMDLevel = cpuid.CPU.X64Level()

func BenchmarkVUQAdd(b *testing.B) {
	b.Logf("host SIMD level: x64v%d (%s)", hostSIMDLevel, cpuid.CPU.BrandName)

	ed, store := newExec(2)
	store.WriteU128(0, 0xFFFFFFFF00000000, 0)
	store.WriteU128(1, 1, 0)
	h := &ir.Header{Op: ir.OpVUQAdd, ResultSize: 16, ElemSize: 4, Args: [4]ir.NodeID{0, 1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		VUQAdd(ed, h, 2)
	}
}
