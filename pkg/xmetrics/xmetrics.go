// Package xmetrics exposes the core's runtime counters via
// prometheus/client_golang on a private registry, so embedding a
// replay or trace-streaming binary never collides with whatever
// default registry its own process already uses.
package xmetrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the private registry every metric in this package is
// registered against. Nothing in this module serves it over HTTP; an
// embedding binary that wants the metrics gathers from it itself, and
// tests and library callers that don't care about metrics never touch it.
var Registry = prometheus.NewRegistry()

var (
	// UnknownOpcode counts blocks rejected because the dispatcher had
	// no kernel registered for a header's Op.
	UnknownOpcode = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xlate_interp_unknown_opcode_total",
		Help: "Blocks rejected for an unregistered or unwired opcode tag.",
	})

	// KernelPanics counts kernel invocations that panicked (division by
	// zero, a BMI2/shift helper given an input outside its documented
	// domain) and were recovered by the dispatcher.
	KernelPanics = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xlate_interp_kernel_panics_total",
		Help: "Kernel invocations recovered from a panic by the dispatcher.",
	})

	// BlocksExecuted counts completed Interpreter.Run calls.
	BlocksExecuted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xlate_interp_blocks_executed_total",
		Help: "IR blocks executed to completion by the interpreter.",
	})

	// BlockLatency observes wall-clock time spent in Interpreter.Run.
	BlockLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "xlate_interp_block_latency_seconds",
		Help:    "Time spent executing one IR block.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	Registry.MustRegister(UnknownOpcode, KernelPanics, BlocksExecuted, BlockLatency)
}
