//go:build !windows

package escalate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"
)

// unixEscalator elevates to root's euid via seteuid(2) around fn, the
// way the original policy engine's privileged decision phase does
// (spec.md: "runs inside the privileged short-lived decision phase of
// a setuid process").
type unixEscalator struct {
	logger      *slog.Logger
	originalUID int
	isSetuid    bool
	mu          sync.Mutex
}

func newPlatformEscalator(logger *slog.Logger) Escalator {
	originalUID := syscall.Getuid()
	effectiveUID := syscall.Geteuid()
	return &unixEscalator{
		logger:      logger,
		originalUID: originalUID,
		isSetuid:    effectiveUID == 0 && originalUID != 0,
	}
}

func (e *unixEscalator) Supported() bool { return e.isSetuid }

// WithPrivileges elevates to euid 0, runs fn, and restores the
// original euid unconditionally — including across a panic, which is
// re-raised only after restoration succeeds. A restoration failure is
// a critical security condition: the process can no longer be trusted
// to run at its original privilege level, so it terminates immediately
// rather than continuing with an indeterminate euid.
func (e *unixEscalator) WithPrivileges(_ context.Context, reason string, fn func() error) (err error) {
	if !e.isSetuid {
		return ErrNotSupported
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if seteuidErr := syscall.Seteuid(0); seteuidErr != nil {
		return &Error{Reason: reason, OriginalUID: e.originalUID, TargetUID: 0, SyscallErr: seteuidErr, Timestamp: time.Now()}
	}
	e.logger.Debug("privileges elevated", "reason", reason, "original_uid", e.originalUID)

	defer func() {
		var panicValue any
		if r := recover(); r != nil {
			panicValue = r
			e.logger.Error("panic during privileged operation, restoring privileges", "panic", r)
		}

		if restoreErr := syscall.Seteuid(e.originalUID); restoreErr != nil {
			e.emergencyShutdown(restoreErr)
		} else {
			e.logger.Debug("privileges restored", "restored_uid", e.originalUID)
		}

		if panicValue != nil {
			panic(panicValue)
		}
	}()

	return fn()
}

func (e *unixEscalator) emergencyShutdown(restoreErr error) {
	msg := "CRITICAL: failed to restore original privileges"
	e.logger.Error(msg,
		"error", restoreErr,
		"original_uid", e.originalUID,
		"current_euid", os.Geteuid(),
		"pid", os.Getpid(),
	)
	fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, restoreErr)
	os.Exit(1)
}
