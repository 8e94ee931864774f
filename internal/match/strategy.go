package match

import (
	"context"
	"strings"
)

// strategy names the shape of a command-shape matcher (spec.md §9
// "Strategy dispatch → trait/interface"). No type in this package
// implements it: the strategies are plain functions (matchAll,
// matchRegex, ...) that the dispatcher selects with a switch. The
// dispatcher performs pivot framing around the call; strategies never
// pivot themselves.
type strategy interface {
	match(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool
}

// rootRef returns the RootRef set_cmnd_fd should resolve /dev/fd/N
// against: the live root, unless a pivot is currently in effect.
func (c *Context) rootRef() RootRef {
	if c.pivotedRoot != nil {
		return c.pivotedRoot
	}
	return absoluteRootRef{fs: c.FS}
}

// openStatInterceptDigest is the open/stat/intercept-guard/digest
// sequence every strategy below repeats (spec.md: "Strategy →
// (opener → identity probe → digest verifier → argument matcher)").
// It returns the opened handle (possibly nil) and whether the
// sequence succeeded; on failure the caller must not publish
// anything, and the handle is already closed.
func openStatInterceptDigest(c *Context, path string, digests DigestList) (FileHandle, bool) {
	fh, openErr := openWithEscalation(c, path, digests)
	if openErr != nil {
		if len(digests) > 0 {
			c.fail(KindAccessDenied, path, openErr)
		}
		return nil, false
	}

	if c.Mode == ModeInode {
		st, ok := statByHandleOrPath(c.FS, fh, path)
		if !ok {
			closeCmndFD(fh)
			return nil, false
		}
		if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
			closeCmndFD(fh)
			return nil, false
		}
	}

	ok, err := verifyDigests(c.Digest, fh, digests)
	if err != nil {
		c.logf("digest verification error for %s: %v", path, err)
	}
	if !ok {
		closeCmndFD(fh)
		c.fail(KindDigestMismatch, path, nil)
		return nil, false
	}
	return fh, true
}

// openWithEscalation calls openCommand, bracketed by c.Escalate when
// one is configured. Most deployments run at the permissions the
// opener needs and leave Escalate nil, in which case this is just
// openCommand.
func openWithEscalation(c *Context, path string, digests DigestList) (FileHandle, error) {
	if c.Escalate == nil {
		return openCommand(c.FS, path, digests, c.Defaults.FdExec)
	}

	var fh FileHandle
	var err error
	escErr := c.Escalate.WithPrivileges(context.Background(), path, func() error {
		fh, err = openCommand(c.FS, path, digests, c.Defaults.FdExec)
		return err
	})
	if escErr != nil {
		return nil, escErr
	}
	return fh, err
}

// relativeToCanonical builds the canonicalized absolute form of a
// relative user_cmnd, the way command_matches_regex/fnmatch do before
// attempting the pattern match: "A relative user_cmnd will not match,
// try canonicalized version."
func relativeToCanonical(u UserCommand) (string, bool) {
	if strings.HasPrefix(u.Literal, "/") {
		return u.Literal, true
	}
	if u.Dir == "" {
		return "", false
	}
	joined, err := JoinPath(u.Dir, u.Base)
	if err != nil {
		return "", false
	}
	return joined, true
}
