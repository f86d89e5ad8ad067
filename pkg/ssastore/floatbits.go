package ssastore

import "math"

func uint32FromFloat32(v float32) uint32  { return math.Float32bits(v) }
func float32FromUint32(v uint32) float32  { return math.Float32frombits(v) }
func uint64FromFloat64(v float64) uint64  { return math.Float64bits(v) }
func float64FromUint64(v uint64) float64  { return math.Float64frombits(v) }
