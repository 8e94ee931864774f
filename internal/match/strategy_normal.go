package match

import "strings"

// matchNormal implements the normal (literal-path) strategy (spec.md
// §4.5). A trailing slash delegates to the directory-prefix matcher.
// In name-match mode, identity is decided by pure literal path-string
// equality — no filesystem consultation at all, per spec.md §8's
// "Determinism in name-match mode: result independent of filesystem
// state" — matching the original's SUDOERS_NAME_MATCH build, which is
// plain strcmp(user_cmnd, sudoers_cmnd). In inode mode, the rule
// command's basename and canonicalized parent directory must first
// agree with the user's, and identity is then decided by inode
// equality when both stats are available, falling back to literal
// path-string equality when either side's existence couldn't be
// established.
func matchNormal(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool {
	if strings.HasSuffix(rule.Raw, "/") {
		return matchDirectory(c, strings.TrimSuffix(rule.Raw, "/"), digests)
	}

	if c.Mode == ModeName {
		if c.User.Literal != rule.Raw {
			return false
		}
		if !matchArgs(c, args, isSudoeditLiteral(rule), c.User.Args) {
			return false
		}
		fh, openErr := openWithEscalation(c, rule.Raw, digests)
		if openErr != nil {
			if len(digests) > 0 {
				return c.fail(KindAccessDenied, rule.Raw, openErr)
			}
			return false
		}
		ok, err := verifyDigests(c.Digest, fh, digests)
		if err != nil {
			c.logf("digest verification error for %s: %v", rule.Raw, err)
		}
		if !ok {
			closeCmndFD(fh)
			return c.fail(KindDigestMismatch, rule.Raw, nil)
		}
		if err := c.setSafeCmnd(rule.Raw); err != nil {
			closeCmndFD(fh)
			return false
		}
		c.setCmndFD(fh, c.rootRef())
		return true
	}

	if Basename(rule.Raw) != c.User.Base {
		return false
	}
	if c.User.Dir != "" {
		if dir := DirName(rule.Raw); dir != "" {
			resolved, err := c.FS.Canonicalize(dir)
			if err == nil && resolved != c.User.Dir {
				return false
			}
		}
	}

	fh, openErr := openWithEscalation(c, rule.Raw, digests)
	if openErr != nil {
		if len(digests) > 0 {
			return c.fail(KindAccessDenied, rule.Raw, openErr)
		}
		return false
	}

	if c.User.Stat != nil {
		if st, statOK := statByHandleOrPath(c.FS, fh, rule.Raw); statOK {
			if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
				closeCmndFD(fh)
				return false
			}
			if !SameInode(*c.User.Stat, st) {
				closeCmndFD(fh)
				return false
			}
		} else if c.User.Literal != rule.Raw {
			closeCmndFD(fh)
			return false
		}
	} else if c.User.Literal != rule.Raw {
		closeCmndFD(fh)
		return false
	}

	if !matchArgs(c, args, isSudoeditLiteral(rule), c.User.Args) {
		closeCmndFD(fh)
		return false
	}

	ok, err := verifyDigests(c.Digest, fh, digests)
	if err != nil {
		c.logf("digest verification error for %s: %v", rule.Raw, err)
	}
	if !ok {
		closeCmndFD(fh)
		return c.fail(KindDigestMismatch, rule.Raw, nil)
	}

	if err := c.setSafeCmnd(rule.Raw); err != nil {
		closeCmndFD(fh)
		return false
	}
	c.setCmndFD(fh, c.rootRef())
	return true
}
