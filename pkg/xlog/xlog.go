// Package xlog wraps a stdlib *log.Logger with nil-safe methods:
// logging is opt-in (a nil Logger is a silent no-op) so the hot path
// of block execution never pays for a log call unless a caller
// explicitly wired a sink.
package xlog

import (
	"io"
	"log"
	"os"
)

// Logger wraps *log.Logger; the zero value logs nowhere.
type Logger struct {
	l *log.Logger
}

// New builds a Logger writing to w with the given prefix.
func New(w io.Writer, prefix string) *Logger {
	return &Logger{l: log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)}
}

// NewFile opens (creating/appending) a log file at path.
func NewFile(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return New(f, ""), nil
}

func (lg *Logger) Printf(format string, args ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Printf(format, args...)
}

func (lg *Logger) Println(args ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Println(args...)
}
