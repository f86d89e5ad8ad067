// Package xerr defines the core's error taxonomy. It distinguishes
// errors a caller can inspect and carry on from (guest undefined
// behaviour such as a division by zero) from ones that mean a Block
// broke the core's invariants (IR consistency) or a context layout has
// drifted, after which nothing downstream can be trusted anymore.
package xerr

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"xlate/pkg/ir"
	"xlate/pkg/xlog"
)

// IRConsistencyError means a Block failed a precondition the dispatcher
// or a kernel assumes — an undeclared OpSize, a node id out of range,
// an opcode with no kernel. It is always a bug in whatever produced the
// Block, never in guest code.
type IRConsistencyError struct {
	msg  string
	Op   ir.Op
	Size int
}

func (e *IRConsistencyError) Error() string {
	return fmt.Sprintf("%s (op=%s size=%d)", e.msg, e.Op, e.Size)
}

// NewIRConsistency builds an IRConsistencyError wrapped with a stack
// trace via cockroachdb/errors, so a Fatal() report carries the panic
// site rather than just the message.
func NewIRConsistency(msg string, op ir.Op, size int) error {
	return errors.WithStack(&IRConsistencyError{msg: msg, Op: op, Size: size})
}

// GuestUndefinedBehaviorError marks a case where the guest program
// itself did something with no defined result; the division kernels
// raise it for a zero divisor. No value is written for the faulting
// node: the dispatcher stops the block and returns this error, which
// callers can detect and log separately from IR-consistency failures.
type GuestUndefinedBehaviorError struct {
	msg string
}

func (e *GuestUndefinedBehaviorError) Error() string { return e.msg }

func NewGuestUndefinedBehavior(msg string) error {
	return errors.WithStack(&GuestUndefinedBehaviorError{msg: msg})
}

// LayoutMismatchError reports a guest context marshalling size or
// offset that doesn't match the target ABI's documented layout (spec
// §6). Seeing one of these means sigctx's struct definitions have
// drifted from the guest ABI they claim to implement.
type LayoutMismatchError struct {
	Field    string
	Expected int
	Got      int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("layout mismatch: field %q expected %d bytes, got %d", e.Field, e.Expected, e.Got)
}

func NewLayoutMismatch(field string, expected, got int) error {
	return errors.WithStack(&LayoutMismatchError{Field: field, Expected: expected, Got: got})
}

// IsIRConsistency reports whether err (or a wrapped cause) is an
// IRConsistencyError.
func IsIRConsistency(err error) bool {
	var target *IRConsistencyError
	return errors.As(err, &target)
}

// IsGuestUndefinedBehavior reports whether err (or a wrapped cause) is
// a GuestUndefinedBehaviorError.
func IsGuestUndefinedBehavior(err error) bool {
	var target *GuestUndefinedBehaviorError
	return errors.As(err, &target)
}

// IsLayoutMismatch reports whether err (or a wrapped cause) is a
// LayoutMismatchError.
func IsLayoutMismatch(err error) bool {
	var target *LayoutMismatchError
	return errors.As(err, &target)
}

// Wrap attaches msg and a stack trace to err via cockroachdb/errors,
// for the ambient (non-kernel) layers: dispatcher, marshalling, and
// the domain-stack packages around them. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// sentryEnabled tracks whether InitSentry configured a DSN; Fatal
// skips reporting entirely rather than calling into an uninitialized
// client when it wasn't.
var sentryEnabled bool

// InitSentry configures best-effort crash reporting for Fatal. Safe to
// call with an empty dsn (reporting just stays disabled); callers that
// never call it at all get the same behavior.
func InitSentry(dsn string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return errors.Wrap(err, "xerr: sentry init")
	}
	sentryEnabled = true
	return nil
}

// Fatal logs err via log, reports it to Sentry when InitSentry
// configured a DSN, and terminates the process. There is no recovery
// path for an IRConsistencyError or a LayoutMismatch: both mean an
// invariant this package exists to guard has already been violated, so
// continuing would just corrupt results further downstream.
func Fatal(log *xlog.Logger, err error) {
	log.Printf("fatal: %+v", err)
	if sentryEnabled {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
	}
	os.Exit(2)
}
