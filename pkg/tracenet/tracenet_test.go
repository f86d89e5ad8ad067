package tracenet

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestEncodeDecodeEventRoundTrip(t *testing.T) {
	ev := TraceEvent{EntryRIP: 0x401000, NodeCount: 12, ErrText: "guest undefined behavior"}
	got, err := decodeEvent(encodeEvent(ev))
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if got != ev {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, ev)
	}
}

func TestDecodeEventRejectsTruncatedInput(t *testing.T) {
	if _, err := decodeEvent([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error decoding truncated input")
	}
}

func TestMockSinkReceivesSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockSink(ctrl)

	ev := TraceEvent{EntryRIP: 0x1000, NodeCount: 3}
	mock.EXPECT().Send(gomock.Any(), ev).Return(nil)
	mock.EXPECT().Close().Return(nil)

	var sink Sink = mock
	if err := sink.Send(context.Background(), ev); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
