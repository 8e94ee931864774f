package match

import (
	"errors"
	"fmt"
)

// Kind classifies why a match attempt failed, per spec.md §7. The
// public CommandMatches entry point still returns a bare bool; Kind is
// carried on MatchError for callers that want the richer status via
// errors.As, and is never required reading for a correct caller.
type Kind int

const (
	// KindNoMatch means the rule simply does not apply to this user
	// command. Not an error condition; most strategy returns use this.
	KindNoMatch Kind = iota
	// KindChrootMismatch means the user-requested chroot conflicts
	// with the rule's chroot constraint.
	KindChrootMismatch
	// KindDigestMismatch means a required digest did not match any
	// entry in the digest list.
	KindDigestMismatch
	// KindAccessDenied means the target file could not be opened and
	// a digest was required.
	KindAccessDenied
	// KindPivotFailure means changing root failed.
	KindPivotFailure
	// KindInternalBug means a regex failed to compile where one was
	// expected, or a path exceeded PathMax during construction.
	KindInternalBug
)

func (k Kind) String() string {
	switch k {
	case KindNoMatch:
		return "no_match"
	case KindChrootMismatch:
		return "chroot_mismatch"
	case KindDigestMismatch:
		return "digest_mismatch"
	case KindAccessDenied:
		return "access_denied"
	case KindPivotFailure:
		return "pivot_failure"
	case KindInternalBug:
		return "internal_bug"
	default:
		return "unknown"
	}
}

// MatchError carries the classified reason a match attempt failed.
// CommandMatches never returns one directly (its contract is a single
// bool), but internal strategy code uses it to thread a diagnostic
// through to the debug sink before collapsing to false.
type MatchError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *MatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *MatchError) Unwrap() error { return e.Err }

func newMatchError(kind Kind, detail string, err error) *MatchError {
	return &MatchError{Kind: kind, Detail: detail, Err: err}
}

// Sentinel errors for conditions that are programmer errors rather
// than policy-decision outcomes (e.g. a nil DigestEngine).
var (
	ErrNilFileSystem   = errors.New("match: nil FileSystem")
	ErrNilDigestEngine = errors.New("match: nil DigestEngine")
	ErrPathTooLong     = errors.New("match: constructed path exceeds PathMax")
)

// PathMax bounds every path this package constructs by concatenation
// (directory-prefix joins, relative-to-canonical joins), mirroring the
// C implementation's ssizeof(path) truncation guard against PATH_MAX.
const PathMax = 4096
