package match

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Escalator brackets a privileged open with a platform-specific
// elevation/restoration pair, for the case where the rule's target
// lives under a root-owned directory the calling process can't read
// at its current euid. A nil Context.Escalate means the process
// already runs with the permissions the opener needs, and no
// bracketing happens.
type Escalator interface {
	WithPrivileges(ctx context.Context, reason string, fn func() error) error
}

// Context gathers the process-wide bindings spec.md §9 says should
// stop being hidden globals: the user's resolved command, the
// effective defaults, the runtime mode, and the two pieces of
// published state (safe_cmnd, cmnd_fd). One Context is built per
// dispatch call and is not safe for concurrent reuse across calls —
// matching §5's "single-threaded and synchronous" model.
type Context struct {
	User     UserCommand
	Defaults Defaults
	Mode     Mode

	FS       FileSystem
	Digest   DigestEngine
	Pivot    RootPivot
	Resolver PathResolver
	Logger   *slog.Logger

	// Escalate, if non-nil, brackets the safe opener's filesystem
	// calls with a privilege elevation/restoration pair. Left nil in
	// tests and in any deployment that already runs at the
	// permissions it needs.
	Escalate Escalator

	// Intercepted mirrors CommandInfo.Intercepted for the duration of
	// a dispatch: true when the caller is deciding whether to let a
	// descendant process exec this file, triggering the stricter
	// setid guard (spec.md §4.7, §GLOSSARY "Intercept mode").
	Intercepted bool

	// RequestedChroot is the user's own chroot constraint, distinct
	// from Defaults.RunChroot (the policy-wide fallback). "" means the
	// user made no chroot request.
	RequestedChroot string

	safeCmnd    string
	cmndFD      FileHandle
	pivotedRoot RootRef
	lastErr     *MatchError
}

// NewContext builds a Context with production collaborators. Tests
// construct one directly with a fake FileSystem/DigestEngine/RootPivot
// instead.
func NewContext(user UserCommand, defaults Defaults, mode Mode) *Context {
	return &Context{
		User:     user,
		Defaults: defaults,
		Mode:     mode,
		FS:       NewOSFileSystem(),
		Digest:   NewDigestEngine(),
		Pivot:    NewRootPivot(),
		Resolver: NewPathResolver(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SafeCmnd returns the path published by a successful non-ALL match,
// or "" if none has been published yet.
func (c *Context) SafeCmnd() string { return c.safeCmnd }

// CmndFD returns the descriptor published for execution, or nil if
// "none" (either never opened, or closed per fdexec=never).
func (c *Context) CmndFD() FileHandle { return c.cmndFD }

// LastError returns the classified reason the most recent CommandMatches
// call on this Context failed, or nil if that call matched (or no call
// has been made yet). CommandMatches's own contract stays a bare bool
// (spec.md §7); LastError is how a caller that wants the richer status
// promised by SPEC_FULL §2.2 recovers one via errors.Is/errors.As.
func (c *Context) LastError() error {
	if c.lastErr == nil {
		return nil
	}
	return c.lastErr
}

// fail records a classified MatchError as both a Debug diagnostic and
// this Context's LastError, then returns false so strategy code can
// write `return c.fail(...)` at a losing return.
func (c *Context) fail(kind Kind, detail string, err error) bool {
	c.lastErr = newMatchError(kind, detail, err)
	c.logf("%v", c.lastErr)
	return false
}

// setSafeCmnd publishes path as safe_cmnd. Go strings never fail to
// allocate the way the C implementation's strdup(3) can, but the
// method keeps the same fail-closed shape spec.md §5/§9 describe
// ("Allocation failures on safe_cmnd assignment are treated as
// fail-closed") so a future caller that does introduce a fallible
// publish step (e.g. writing to a fixed-size buffer) has an obvious
// place to plug it in without touching every strategy.
func (c *Context) setSafeCmnd(path string) error {
	c.safeCmnd = path
	return nil
}

// logf implements diagLogger, forwarding to the injected slog.Logger
// at Debug level. Diagnostics are never observable in the return
// value of CommandMatches (spec.md §7).
func (c *Context) logf(format string, args ...any) {
	c.Logger.Debug(fmt.Sprintf(format, args...))
}

// closeCmndFD is used by every strategy's failure path to guarantee
// resource neutrality (spec.md §5): a descriptor opened during a
// losing attempt is always closed before the strategy returns false.
// It never touches the already-published c.cmndFD.
func closeCmndFD(fh FileHandle) {
	if fh != nil {
		_ = fh.Close()
	}
}
