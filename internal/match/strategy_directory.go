package match

import "strings"

// matchDirectory implements the directory-prefix matcher shared by
// the glob and normal strategies (spec.md §4.5 "Directory prefix").
// dir must not include the trailing slash.
//
// Inode mode: canonicalize dir, require it equal user_cmnd_dir when
// known, then open/stat D/user_base and compare (dev,ino) against
// user_stat.
//
// Name mode: user_cmnd must literally equal "D/" + a single final
// path component — i.e. start with "D/" and contain no further '/' in
// the remainder, so a command in a subdirectory of D never matches.
func matchDirectory(c *Context, dir string, digests DigestList) bool {
	if c.Mode == ModeName {
		prefix := dir + "/"
		if !strings.HasPrefix(c.User.Literal, prefix) {
			return false
		}
		rest := c.User.Literal[len(prefix):]
		if strings.Contains(rest, "/") {
			return false
		}
		fh, ok := openStatInterceptDigest(c, c.User.Literal, digests)
		if !ok {
			return false
		}
		c.safeCmnd = c.User.Literal
		c.setCmndFD(fh, c.rootRef())
		return true
	}

	if c.User.Dir != "" {
		resolved, err := c.FS.Canonicalize(dir)
		if err == nil && resolved != c.User.Dir {
			return false
		}
	}

	path, err := JoinPath(dir, c.User.Base)
	if err != nil {
		return c.fail(KindInternalBug, "directory-prefix path construction", err)
	}

	fh, openErr := openWithEscalation(c, path, digests)
	if openErr != nil {
		if len(digests) > 0 {
			return c.fail(KindAccessDenied, path, openErr)
		}
		return false
	}
	st, statOK := statByHandleOrPath(c.FS, fh, path)
	if !statOK {
		closeCmndFD(fh)
		return false
	}
	if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
		closeCmndFD(fh)
		return false
	}
	if c.User.Stat != nil && !SameInode(*c.User.Stat, st) {
		closeCmndFD(fh)
		return false
	}

	ok, err := verifyDigests(c.Digest, fh, digests)
	if err != nil {
		c.logf("digest verification error for %s: %v", path, err)
	}
	if !ok {
		closeCmndFD(fh)
		return c.fail(KindDigestMismatch, path, nil)
	}

	if err := c.setSafeCmnd(path); err != nil {
		closeCmndFD(fh)
		return false
	}
	c.setCmndFD(fh, c.rootRef())
	return true
}
