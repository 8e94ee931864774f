package match

// matchFnmatch implements the fast-glob strategy (spec.md §4.5):
// structurally identical to the regex strategy, but the command
// pattern is matched with fnmatch under the path-separator flag
// (glibc's FNM_PATHNAME — a '/' in the candidate path must line up
// with a literal '/' in the pattern).
func matchFnmatch(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool {
	cmnd, ok := relativeToCanonical(c.User)
	if !ok {
		return false
	}

	if !fnmatch(rule.Raw, cmnd, true) {
		return false
	}

	if !matchArgs(c, args, isSudoeditLiteral(rule), c.User.Args) {
		return false
	}

	fh, ok := openStatInterceptDigest(c, cmnd, digests)
	if !ok {
		return false
	}
	c.setCmndFD(fh, c.rootRef())
	return true
}
