// Package tracestore is a PebbleDB-backed, content-addressed store of
// recorded block executions: an SSA store snapshot plus its originating
// IR block bytes and entry RIP, keyed by a blake2b fingerprint so the
// same (block, entry) pair always lands at the same key. cmd/xlate-replay
// uses it to replay a previously captured divergence between the
// interpreter and a JIT without re-running the guest.
//
// Open one *pebble.DB, Get/Set by key, no transaction batching: trace
// capture is append-only and doesn't need atomic multi-key commits.
package tracestore

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble"
	"golang.org/x/crypto/blake2b"

	"xlate/pkg/tracepack"
	"xlate/pkg/xerr"
)

// Store wraps a PebbleDB instance holding compressed trace segments.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if absent) a Store at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := pebble.Open(dbPath, &pebble.Options{})
	if err != nil {
		return nil, xerr.Wrap(err, "tracestore: open")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return xerr.Wrap(s.db.Close(), "tracestore: close")
}

// Key fingerprints an IR block's serialized bytes plus the guest entry
// RIP with blake2b-256, so two captures of the same block at the same
// entry always collide onto the same record.
func Key(blockBytes []byte, entryRIP uint64) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write(blockBytes)
	var rip [8]byte
	binary.LittleEndian.PutUint64(rip[:], entryRIP)
	h.Write(rip[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Record is one captured block execution: enough to replay the block
// against the interpreter and compare against the snapshot's SSA
// store contents without re-decoding the guest.
type Record struct {
	BlockBytes   []byte
	EntryRIP     uint64
	StoreSnapshot []byte // flattened SSA store contents at block end
}

// Put compresses and stores rec under Key(rec.BlockBytes, rec.EntryRIP).
func (s *Store) Put(rec Record) error {
	key := Key(rec.BlockBytes, rec.EntryRIP)
	payload, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	compressed, err := tracepack.Compress(payload)
	if err != nil {
		return err
	}
	if err := s.db.Set(key[:], compressed, pebble.Sync); err != nil {
		return xerr.Wrap(err, "tracestore: put")
	}
	return nil
}

// Get retrieves and decompresses the Record for (blockBytes, entryRIP),
// returning (Record{}, false, nil) if no capture exists for that key.
func (s *Store) Get(blockBytes []byte, entryRIP uint64) (Record, bool, error) {
	key := Key(blockBytes, entryRIP)
	compressed, closer, err := s.db.Get(key[:])
	if err == pebble.ErrNotFound {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, xerr.Wrap(err, "tracestore: get")
	}
	defer closer.Close()
	payload, err := tracepack.Decompress(compressed, 0)
	if err != nil {
		return Record{}, false, err
	}
	rec, err := decodeRecord(payload)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// encodeRecord/decodeRecord use a flat length-prefixed layout rather
// than a general serializer: tracestore has exactly one record shape
// and gob/proto would add a dependency this package doesn't need.
func encodeRecord(rec Record) ([]byte, error) {
	buf := make([]byte, 0, 8+4+len(rec.BlockBytes)+4+len(rec.StoreSnapshot))
	var ripBytes [8]byte
	binary.LittleEndian.PutUint64(ripBytes[:], rec.EntryRIP)
	buf = append(buf, ripBytes[:]...)
	buf = appendLenPrefixed(buf, rec.BlockBytes)
	buf = appendLenPrefixed(buf, rec.StoreSnapshot)
	return buf, nil
}

func decodeRecord(buf []byte) (Record, error) {
	if len(buf) < 8 {
		return Record{}, xerr.Wrap(errShortRecord, "tracestore: decode")
	}
	entryRIP := binary.LittleEndian.Uint64(buf[:8])
	rest := buf[8:]
	blockBytes, rest, err := readLenPrefixed(rest)
	if err != nil {
		return Record{}, err
	}
	snapshot, _, err := readLenPrefixed(rest)
	if err != nil {
		return Record{}, err
	}
	return Record{BlockBytes: blockBytes, EntryRIP: entryRIP, StoreSnapshot: snapshot}, nil
}

func appendLenPrefixed(buf, data []byte) []byte {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(data)))
	buf = append(buf, l[:]...)
	return append(buf, data...)
}

func readLenPrefixed(buf []byte) (data, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, xerr.Wrap(errShortRecord, "tracestore: decode")
	}
	n := binary.LittleEndian.Uint32(buf[:4])
	buf = buf[4:]
	if uint32(len(buf)) < n {
		return nil, nil, xerr.Wrap(errShortRecord, "tracestore: decode")
	}
	return buf[:n], buf[n:], nil
}

var errShortRecord = shortRecordError{}

type shortRecordError struct{}

func (shortRecordError) Error() string { return "tracestore: truncated record" }
