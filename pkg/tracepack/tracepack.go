// Package tracepack compresses recorded trace segments; tracestore
// runs every record through it before writing. Long runs
// of repeated dispatch-table/register snapshots compress well, so a
// zstd pass pays for itself even at a cheap compression level.
package tracepack

import (
	"github.com/DataDog/zstd"

	"xlate/pkg/xerr"
)

// DefaultLevel is chosen for throughput over ratio: trace capture runs
// alongside live interpretation and should not become the bottleneck.
const DefaultLevel = 3

// Compress zstd-compresses a trace segment at DefaultLevel.
func Compress(segment []byte) ([]byte, error) {
	return CompressLevel(segment, DefaultLevel)
}

// CompressLevel zstd-compresses a trace segment at the given level.
func CompressLevel(segment []byte, level int) ([]byte, error) {
	out, err := zstd.CompressLevel(nil, segment, level)
	if err != nil {
		return nil, xerr.Wrap(err, "tracepack: compress")
	}
	return out, nil
}

// Decompress reverses Compress/CompressLevel. originalSize is an
// optional hint (0 if unknown) used to preallocate the output buffer;
// tracestore does not store the original size and passes 0.
func Decompress(compressed []byte, originalSize int) ([]byte, error) {
	var dst []byte
	if originalSize > 0 {
		dst = make([]byte, 0, originalSize)
	}
	out, err := zstd.Decompress(dst, compressed)
	if err != nil {
		return nil, xerr.Wrap(err, "tracepack: decompress")
	}
	return out, nil
}
