package ir

import "encoding/binary"

// EncodeBlock and DecodeBlock give tracestore/tracenet/cmd callers a
// concrete byte representation of a Block to fingerprint and persist.
// The real decoder (out of scope here, spec.md §1) produces Blocks
// in-memory directly; this flat little-endian encoding exists purely
// for the trace-capture path, not as a competing wire format.
func EncodeBlock(b *Block) []byte {
	buf := make([]byte, 4, 4+len(b.Headers)*headerWireSize)
	binary.LittleEndian.PutUint32(buf, uint32(len(b.Headers)))
	for i := range b.Headers {
		buf = append(buf, encodeHeader(&b.Headers[i])...)
	}
	return buf
}

func DecodeBlock(data []byte) (*Block, error) {
	if len(data) < 4 {
		return nil, errTruncated
	}
	n := binary.LittleEndian.Uint32(data[:4])
	data = data[4:]
	headers := make([]Header, n)
	for i := uint32(0); i < n; i++ {
		if len(data) < headerWireSize {
			return nil, errTruncated
		}
		headers[i] = decodeHeader(data[:headerWireSize])
		data = data[headerWireSize:]
	}
	return &Block{Headers: headers}, nil
}

// headerWireSize is the flat encoding size of one Header: Op(2) +
// ResultSize(1) + ElemSize(1) + Args(4*4) + Imm(8) + Cond(1) +
// CompareSize(1) + FloatCompare(1) + FloatKind(1) + Lsb(1) + Width(1)
// + Mask(8) + Index(1) + BitShift(1) + FlagMask(1) + EntryOffset(8) +
// ConstValue(16).
const headerWireSize = 2 + 1 + 1 + 16 + 8 + 1 + 1 + 1 + 1 + 1 + 1 + 8 + 1 + 1 + 1 + 8 + 16

func encodeHeader(h *Header) []byte {
	buf := make([]byte, 0, headerWireSize)
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(h.Op))
	buf = append(buf, u16[:]...)
	buf = append(buf, h.ResultSize, h.ElemSize)
	for _, a := range h.Args {
		var u32 [4]byte
		binary.LittleEndian.PutUint32(u32[:], uint32(a))
		buf = append(buf, u32[:]...)
	}
	buf = append(buf, encodeU64(uint64(h.Imm))...)
	buf = append(buf, byte(h.Cond), h.CompareSize, boolByte(h.FloatCompare), byte(h.FloatKind))
	buf = append(buf, h.Lsb, h.Width)
	buf = append(buf, encodeU64(h.Mask)...)
	buf = append(buf, h.Index, h.BitShift, h.FlagMask)
	buf = append(buf, encodeU64(uint64(h.EntryOffset))...)
	buf = append(buf, h.ConstValue[:]...)
	return buf
}

func decodeHeader(data []byte) Header {
	var h Header
	h.Op = Op(binary.LittleEndian.Uint16(data[0:2]))
	h.ResultSize = data[2]
	h.ElemSize = data[3]
	off := 4
	for i := range h.Args {
		h.Args[i] = NodeID(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
	}
	h.Imm = int64(binary.LittleEndian.Uint64(data[off : off+8]))
	off += 8
	h.Cond = CondCode(data[off])
	h.CompareSize = data[off+1]
	h.FloatCompare = data[off+2] != 0
	h.FloatKind = FloatKind(data[off+3])
	off += 4
	h.Lsb = data[off]
	h.Width = data[off+1]
	off += 2
	h.Mask = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8
	h.Index = data[off]
	h.BitShift = data[off+1]
	h.FlagMask = data[off+2]
	off += 3
	h.EntryOffset = int64(binary.LittleEndian.Uint64(data[off : off+8]))
	off += 8
	copy(h.ConstValue[:], data[off:off+16])
	return h
}

func encodeU64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type truncatedError struct{}

func (truncatedError) Error() string { return "ir: truncated block encoding" }

var errTruncated = truncatedError{}
