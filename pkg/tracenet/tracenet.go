// Package tracenet streams live trace events (one record per block
// boundary) from an embedded interpreter session to an attached
// differential-test client over a QUIC stream: one quic.Connection,
// one long-lived stream, length-prefixed messages. A trace sidecar is
// a local debug attachment, not an authenticated peer, so the TLS
// config here is a minimal self-signed certificate for QUIC's
// mandatory TLS 1.3 rather than a peer-identity handshake.
package tracenet

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/quic-go/quic-go"

	"xlate/pkg/xerr"
)

// TraceEvent is one block-boundary record: the block's entry RIP, the
// number of nodes it executed, and whether dispatch returned an error
// (captured as its string form, since the wire format doesn't need the
// full xerr type hierarchy on the client side).
type TraceEvent struct {
	EntryRIP  uint64
	NodeCount uint32
	ErrText   string
}

// Sink is anything that accepts a stream of TraceEvents. The live
// implementation is a QUIC stream (Stream below); tests substitute a
// go.uber.org/mock-generated mock so they don't require a live QUIC
// listener (see tracenet/mock_sink.go).
type Sink interface {
	Send(ctx context.Context, ev TraceEvent) error
	Close() error
}

// Stream is a Sink backed by one QUIC stream, opened once and reused
// for every event of a session.
type Stream struct {
	conn   quic.Connection
	stream quic.Stream
}

// Dial opens a QUIC connection to addr and its one trace stream.
func Dial(ctx context.Context, addr string) (*Stream, error) {
	tlsConf, err := selfSignedClientTLSConfig()
	if err != nil {
		return nil, err
	}
	conn, err := quic.DialAddr(ctx, addr, tlsConf, nil)
	if err != nil {
		return nil, xerr.Wrap(err, "tracenet: dial")
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(0, "stream open failed")
		return nil, xerr.Wrap(err, "tracenet: open stream")
	}
	return &Stream{conn: conn, stream: stream}, nil
}

// Listener accepts trace sessions from attached differential-test
// clients.
type Listener struct {
	ql *quic.Listener
}

// Listen starts a QUIC listener on addr.
func Listen(addr string) (*Listener, error) {
	tlsConf, err := selfSignedServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ql, err := quic.ListenAddr(addr, tlsConf, nil)
	if err != nil {
		return nil, xerr.Wrap(err, "tracenet: listen")
	}
	return &Listener{ql: ql}, nil
}

// Accept blocks for the next incoming trace session and its stream.
func (l *Listener) Accept(ctx context.Context) (*Stream, error) {
	conn, err := l.ql.Accept(ctx)
	if err != nil {
		return nil, xerr.Wrap(err, "tracenet: accept")
	}
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		return nil, xerr.Wrap(err, "tracenet: accept stream")
	}
	return &Stream{conn: conn, stream: stream}, nil
}

func (l *Listener) Close() error {
	return xerr.Wrap(l.ql.Close(), "tracenet: listener close")
}

// Send writes one length-prefixed TraceEvent to the stream.
func (s *Stream) Send(ctx context.Context, ev TraceEvent) error {
	payload := encodeEvent(ev)
	if err := writeFramed(s.stream, payload); err != nil {
		return xerr.Wrap(err, "tracenet: send")
	}
	return nil
}

// Recv reads the next TraceEvent off the stream, blocking until one
// arrives or the stream closes.
func (s *Stream) Recv() (TraceEvent, error) {
	payload, err := readFramed(s.stream)
	if err != nil {
		return TraceEvent{}, xerr.Wrap(err, "tracenet: recv")
	}
	return decodeEvent(payload)
}

func (s *Stream) Close() error {
	s.stream.Close()
	return xerr.Wrap(s.conn.CloseWithError(0, "normal close"), "tracenet: close")
}

func writeFramed(w io.Writer, data []byte) error {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(data)))
	if _, err := w.Write(l[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readFramed(r io.Reader) ([]byte, error) {
	var l [4]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(l[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func encodeEvent(ev TraceEvent) []byte {
	errBytes := []byte(ev.ErrText)
	buf := make([]byte, 0, 8+4+4+len(errBytes))
	var rip [8]byte
	binary.LittleEndian.PutUint64(rip[:], ev.EntryRIP)
	buf = append(buf, rip[:]...)
	var nc [4]byte
	binary.LittleEndian.PutUint32(nc[:], ev.NodeCount)
	buf = append(buf, nc[:]...)
	var el [4]byte
	binary.LittleEndian.PutUint32(el[:], uint32(len(errBytes)))
	buf = append(buf, el[:]...)
	buf = append(buf, errBytes...)
	return buf
}

func decodeEvent(buf []byte) (TraceEvent, error) {
	if len(buf) < 16 {
		return TraceEvent{}, fmt.Errorf("tracenet: truncated event (%d bytes)", len(buf))
	}
	ev := TraceEvent{
		EntryRIP:  binary.LittleEndian.Uint64(buf[0:8]),
		NodeCount: binary.LittleEndian.Uint32(buf[8:12]),
	}
	errLen := binary.LittleEndian.Uint32(buf[12:16])
	if uint32(len(buf[16:])) < errLen {
		return TraceEvent{}, fmt.Errorf("tracenet: truncated event error text")
	}
	ev.ErrText = string(buf[16 : 16+errLen])
	return ev, nil
}
