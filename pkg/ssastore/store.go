// Package ssastore implements the per-block SSA value store (spec §4.1,
// component C1): a flat slab of 16-byte slots indexed by node id, with
// little-endian pack/unpack helpers for every width the interpreter
// reads or writes. A uniform 16-byte slot gives O(1) indexing, no
// per-opcode allocation, and natural alignment for the widest (128-bit
// packed) result, exactly as spec §4.1 requires.
//
// The store's lifetime is strictly the execution of one IR block
// (spec invariant 5); callers reuse a Store across blocks via Reset
// rather than reallocating it.
package ssastore

import "encoding/binary"

// Slot is the 16-byte backing for one node id's result. Bytes beyond a
// result's declared size are implementation-defined scratch per spec
// §3; this implementation zeroes them on every write for determinism,
// which callers may rely on but the IR contract does not require.
type Slot [16]byte

// Store is a logically contiguous buffer of Slots indexed by node id.
type Store struct {
	slots []Slot
}

// New allocates a store sized for a block with the given number of
// nodes (the dispatcher typically sizes this to len(block.Headers)).
func New(numNodes int) *Store {
	return &Store{slots: make([]Slot, numNodes)}
}

// Reset clears the store for reuse by the next block's execution,
// without reallocating the backing array unless it must grow.
func (s *Store) Reset(numNodes int) {
	if cap(s.slots) >= numNodes {
		s.slots = s.slots[:numNodes]
		for i := range s.slots {
			s.slots[i] = Slot{}
		}
		return
	}
	s.slots = make([]Slot, numNodes)
}

func (s *Store) slot(id int) *Slot { return &s.slots[id] }

// WriteRaw writes the low size bytes (size in {1,2,4,8,16}) of v into
// slot id, zeroing the remaining bytes of the slot.
func (s *Store) WriteRaw(id int, size int, v [16]byte) {
	slot := s.slot(id)
	*slot = Slot{}
	copy(slot[:size], v[:size])
}

func (s *Store) WriteU8(id int, v uint8) {
	slot := s.slot(id)
	*slot = Slot{}
	slot[0] = v
}

func (s *Store) WriteU16(id int, v uint16) {
	slot := s.slot(id)
	*slot = Slot{}
	binary.LittleEndian.PutUint16(slot[:2], v)
}

func (s *Store) WriteU32(id int, v uint32) {
	slot := s.slot(id)
	*slot = Slot{}
	binary.LittleEndian.PutUint32(slot[:4], v)
}

func (s *Store) WriteU64(id int, v uint64) {
	slot := s.slot(id)
	*slot = Slot{}
	binary.LittleEndian.PutUint64(slot[:8], v)
}

func (s *Store) WriteU128(id int, lo, hi uint64) {
	slot := s.slot(id)
	binary.LittleEndian.PutUint64(slot[:8], lo)
	binary.LittleEndian.PutUint64(slot[8:16], hi)
}

func (s *Store) WriteF32(id int, v float32) {
	s.WriteU32(id, uint32FromFloat32(v))
}

func (s *Store) WriteF64(id int, v float64) {
	s.WriteU64(id, uint64FromFloat64(v))
}

// WriteSized writes a value already expressed as a little-endian byte
// slice of exactly size bytes.
func (s *Store) WriteSized(id int, size int, data []byte) {
	slot := s.slot(id)
	*slot = Slot{}
	copy(slot[:size], data[:size])
}

func (s *Store) ReadU8(id int) uint8 { return s.slots[id][0] }

func (s *Store) ReadU16(id int) uint16 {
	return binary.LittleEndian.Uint16(s.slots[id][:2])
}

func (s *Store) ReadU32(id int) uint32 {
	return binary.LittleEndian.Uint32(s.slots[id][:4])
}

func (s *Store) ReadU64(id int) uint64 {
	return binary.LittleEndian.Uint64(s.slots[id][:8])
}

func (s *Store) ReadU128(id int) (lo, hi uint64) {
	slot := &s.slots[id]
	return binary.LittleEndian.Uint64(slot[:8]), binary.LittleEndian.Uint64(slot[8:16])
}

func (s *Store) ReadF32(id int) float32 { return float32FromUint32(s.ReadU32(id)) }
func (s *Store) ReadF64(id int) float64 { return float64FromUint64(s.ReadU64(id)) }

// ReadBytes returns a copy of the low size bytes of slot id.
func (s *Store) ReadBytes(id int, size int) []byte {
	out := make([]byte, size)
	copy(out, s.slots[id][:size])
	return out
}

// ReadFull returns the entire 16-byte slot, for packed SIMD kernels
// that need the full register regardless of OpSize.
func (s *Store) ReadFull(id int) [16]byte { return [16]byte(s.slots[id]) }

// WriteFull writes an entire 16-byte slot verbatim, for packed SIMD
// kernels that produce a full register's worth of lanes.
func (s *Store) WriteFull(id int, data [16]byte) {
	*s.slot(id) = Slot(data)
}

// ReadAt returns a copy of the low size bytes of a node's slot; it is
// the same read as ReadBytes and takes no offset.
func (s *Store) ReadAt(id int, size int) []byte { return s.ReadBytes(id, size) }

// Snapshot flattens every slot into one contiguous byte slice (16
// bytes per node, in node-id order), for tracestore to persist as a
// Record's StoreSnapshot.
func (s *Store) Snapshot() []byte {
	out := make([]byte, len(s.slots)*16)
	for i, slot := range s.slots {
		copy(out[i*16:(i+1)*16], slot[:])
	}
	return out
}
