// Package traceshard splits a captured trace segment into data and
// parity shards before shipping it to N distributed differential-test
// workers, so one worker dropout during a fuzzing run doesn't lose the
// capture.
package traceshard

import (
	"bytes"

	"github.com/klauspost/reedsolomon"

	"xlate/pkg/xerr"
)

// ShardSet is a segment split into data and parity shards, ready to
// hand one shard each to N distributed workers.
type ShardSet struct {
	DataShards   int
	ParityShards int
	OriginalSize int
	Shards       [][]byte
}

// Split erasure-codes segment into dataShards data shards plus
// parityShards parity shards, recoverable from any dataShards of the
// total.
func Split(segment []byte, dataShards, parityShards int) (ShardSet, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return ShardSet{}, xerr.Wrap(err, "traceshard: new encoder")
	}
	shards, err := enc.Split(segment)
	if err != nil {
		return ShardSet{}, xerr.Wrap(err, "traceshard: split")
	}
	if err := enc.Encode(shards); err != nil {
		return ShardSet{}, xerr.Wrap(err, "traceshard: encode")
	}
	return ShardSet{
		DataShards:   dataShards,
		ParityShards: parityShards,
		OriginalSize: len(segment),
		Shards:       shards,
	}, nil
}

// Reconstruct rebuilds the original segment from set, tolerating up to
// ParityShards missing entries (nil slices in set.Shards at the index
// of a dropped worker's shard).
func Reconstruct(set ShardSet) ([]byte, error) {
	enc, err := reedsolomon.New(set.DataShards, set.ParityShards)
	if err != nil {
		return nil, xerr.Wrap(err, "traceshard: new encoder")
	}
	shards := make([][]byte, len(set.Shards))
	copy(shards, set.Shards)
	if err := enc.Reconstruct(shards); err != nil {
		return nil, xerr.Wrap(err, "traceshard: reconstruct")
	}
	var buf bytes.Buffer
	if err := enc.Join(&buf, shards, set.OriginalSize); err != nil {
		return nil, xerr.Wrap(err, "traceshard: join")
	}
	return buf.Bytes(), nil
}

// MaxTolerableLoss is the number of missing shards Reconstruct can
// still recover from for a given ShardSet.
func MaxTolerableLoss(set ShardSet) int {
	return set.ParityShards
}
