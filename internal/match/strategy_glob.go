package match

import "strings"

// matchGlob implements the glob (inode mode) strategy (spec.md §4.5).
// In name mode it reduces to the fnmatch strategy per §4.5's
// "Name-match variants" ("Glob reduces to fnmatch"). In inode mode it
// expands rule.Raw via filesystem globbing (unsorted) and runs two
// passes over the expansion:
//
//  1. Exact-path pass (only when user_cmnd is absolute): for each
//     expansion textually equal to user_cmnd, open/stat/intercept it;
//     on an inode mismatch the whole match fails immediately (no
//     further candidates, no basename pass); on a digest mismatch the
//     whole match is poisoned (bad_digest) but other identically-named
//     expansions are still tried.
//  2. Basename pass (skipped entirely if the exact pass poisoned the
//     match): for each expansion, a trailing slash delegates to the
//     directory-prefix matcher (which, notably, bypasses argument
//     matching entirely on success); otherwise basename and canonical
//     parent directory must agree with the user's, then
//     open/stat/intercept/digest decide the candidate.
//
// This asymmetry — basename mismatches never poison, digest mismatches
// do — is inherited unchanged from the original implementation; it is
// flagged, not fixed, in spec.md §9's Open Question.
func matchGlob(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool {
	raw := rule.Raw
	if !strings.HasSuffix(raw, "/") {
		base := Basename(raw)
		if !HasMeta(base) && base != c.User.Base {
			return false
		}
	}

	if c.Mode == ModeName {
		return matchFnmatch(c, rule, args, digests)
	}

	matches, err := c.FS.Glob(raw)
	if err != nil || len(matches) == 0 {
		return false
	}

	var candidate string
	var candidateFH FileHandle
	found := false
	badDigest := false

	if strings.HasPrefix(c.User.Literal, "/") {
		for _, m := range matches {
			if m != c.User.Literal {
				continue
			}
			fh, openErr := openWithEscalation(c, m, digests)
			if openErr != nil {
				continue
			}
			st, statOK := statByHandleOrPath(c.FS, fh, m)
			if !statOK {
				closeCmndFD(fh)
				continue
			}
			if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
				closeCmndFD(fh)
				continue
			}
			if c.User.Stat == nil || SameInode(*c.User.Stat, st) {
				ok, derr := verifyDigests(c.Digest, fh, digests)
				if derr != nil {
					c.logf("digest verification error for %s: %v", m, derr)
				}
				if !ok {
					badDigest = true
					closeCmndFD(fh)
					continue
				}
				candidate, candidateFH, found = m, fh, true
			} else {
				// Paths match textually but (dev,ino) differ: fail
				// closed, stop this match attempt entirely.
				closeCmndFD(fh)
				return false
			}
			break
		}
	}

	if !found && !badDigest {
		for _, m := range matches {
			if strings.HasSuffix(m, "/") {
				if matchDirectory(c, strings.TrimSuffix(m, "/"), digests) {
					return true
				}
				continue
			}
			if Basename(m) != c.User.Base {
				continue
			}
			if c.User.Dir != "" {
				if dir := DirName(m); dir != "" {
					resolved, err := c.FS.Canonicalize(dir)
					if err == nil && resolved != c.User.Dir {
						continue
					}
				}
			}
			fh, openErr := openWithEscalation(c, m, digests)
			if openErr != nil {
				continue
			}
			st, statOK := statByHandleOrPath(c.FS, fh, m)
			if !statOK {
				closeCmndFD(fh)
				continue
			}
			if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
				closeCmndFD(fh)
				continue
			}
			if c.User.Stat != nil && !SameInode(*c.User.Stat, st) {
				closeCmndFD(fh)
				continue
			}
			ok, derr := verifyDigests(c.Digest, fh, digests)
			if derr != nil {
				c.logf("digest verification error for %s: %v", m, derr)
			}
			if !ok {
				closeCmndFD(fh)
				continue
			}
			candidate, candidateFH, found = m, fh, true
			break
		}
	}

	if !found {
		if badDigest {
			return c.fail(KindDigestMismatch, raw, nil)
		}
		return false
	}

	if !matchArgs(c, args, isSudoeditLiteral(rule), c.User.Args) {
		closeCmndFD(candidateFH)
		return false
	}

	if err := c.setSafeCmnd(candidate); err != nil {
		closeCmndFD(candidateFH)
		return false
	}
	c.setCmndFD(candidateFH, c.rootRef())
	return true
}
