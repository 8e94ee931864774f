package match

import "regexp"

// matchRegex implements the regex strategy (spec.md §4.5). Canonicalizes
// a relative user_cmnd first; compiles and applies rule.Raw as an
// extended regex; on match, runs the argument matcher, then the
// shared open/stat/intercept/digest sequence. safe_cmnd is never
// modified — the rule's own pattern text is never a usable path.
func matchRegex(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool {
	cmnd, ok := relativeToCanonical(c.User)
	if !ok {
		return false
	}

	re, err := regexp.Compile(rule.Raw)
	if err != nil {
		return c.fail(KindInternalBug, rule.Raw, err)
	}
	if !re.MatchString(cmnd) {
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

// isSudoeditLiteral mirrors the C implementation's literal
// strcmp(sudoers_cmnd, "sudoedit") == 0 check inside
// command_args_match: only the pseudo-command variant can ever equal
// that literal string, but the check is performed against whatever
// rule.Raw holds regardless of strategy, so we preserve that shape
// rather than special-casing by Kind.
func isSudoeditLiteral(rule RuleCommand) bool {
	return rule.Raw == string(PseudoSudoedit)
}
