// Package escalate brackets a privileged filesystem open with a
// seteuid(0)/restore pair, for the opener's "root-owned rule
// directory" case. It is used only when the host process runs
// setuid-root and the caller has not already got root's euid.
package escalate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotSupported is returned by WithPrivileges when the process isn't
// setuid-root, so there are no privileges to elevate.
var ErrNotSupported = errors.New("escalate: privileged execution not supported on this process")

// Error carries the syscall failure from a failed elevation or
// restoration attempt.
type Error struct {
	Reason      string
	OriginalUID int
	TargetUID   int
	SyscallErr  error
	Timestamp   time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("escalate: %q failed (uid %d->%d): %v", e.Reason, e.OriginalUID, e.TargetUID, e.SyscallErr)
}

func (e *Error) Unwrap() error { return e.SyscallErr }

// Escalator brackets fn with a privilege elevation/restoration pair.
// Implementations satisfy internal/match's Escalator interface.
type Escalator interface {
	WithPrivileges(ctx context.Context, reason string, fn func() error) error
	Supported() bool
}

// New returns a platform-appropriate Escalator.
func New(logger *slog.Logger) Escalator {
	return newPlatformEscalator(logger)
}
