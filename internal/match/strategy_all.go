package match

import "strings"

// matchAll implements the ALL strategy (spec.md §4.5): if the user
// command contains a '/', attempt to open and stat it to apply the
// intercept-setid guard, tolerating nonexistence (a relaxation unique
// to ALL — every other strategy treats a missing target as failure).
// The digest is checked against whatever descriptor is available (or
// none); an empty digest list is vacuously satisfied. safe_cmnd is
// never modified.
func matchAll(c *Context, digests DigestList) bool {
	var fh FileHandle

	if strings.Contains(c.User.Literal, "/") {
		var openErr error
		fh, openErr = openWithEscalation(c, c.User.Literal, digests)

		if c.Mode == ModeInode {
			st, statOK := statByHandleOrPath(c.FS, fh, c.User.Literal)
			if statOK {
				if openErr != nil {
					// File exists but couldn't be opened above: that
					// open failure is not tolerated once we know the
					// file is really there.
					closeCmndFD(fh)
					if len(digests) > 0 {
						return c.fail(KindAccessDenied, c.User.Literal, openErr)
					}
					return false
				}
				if !interceptOK(c.Intercepted, c.Defaults.InterceptAllowSetid, st) {
					closeCmndFD(fh)
					return false
				}
			}
			// Nonexistent file: tolerated for ALL.
		}
	}

	ok, err := verifyDigests(c.Digest, fh, digests)
	if err != nil {
		c.logf("digest verification error for ALL (%s): %v", c.User.Literal, err)
	}
	if !ok {
		closeCmndFD(fh)
		return c.fail(KindDigestMismatch, c.User.Literal, nil)
	}

	c.setCmndFD(fh, c.rootRef())
	return true
}
