package match

import "strings"

// CommandMatches is the package's single entry point (spec.md §4.1):
// given a classified rule command/args/chroot and a DigestList, decide
// whether c.User's command satisfies the rule. On success c.SafeCmnd
// and c.CmndFD (when applicable) are published; info, if non-nil,
// receives the chroot-adjusted command path/stat/intercept status.
//
// The dispatcher performs chroot reconciliation and pivot framing
// around strategy selection, and guarantees the pivot is undone on
// every exit path (spec.md §4.1, §5 "Root and working directory are
// restored on every exit of a pivoted dispatch").
func CommandMatches(c *Context, rule RuleCommand, args RuleArgs, ruleChroot string, info *CommandInfo, digests DigestList) bool {
	c.lastErr = nil

	effectiveChroot, resetCmnd, ok := reconcileChroot(c, ruleChroot)
	if !ok {
		return c.fail(KindChrootMismatch, ruleChroot, nil)
	}

	var restore func() error
	var preRoot RootRef
	if effectiveChroot != "" {
		var err error
		restore, preRoot, err = c.Pivot.Pivot(effectiveChroot)
		if err != nil {
			return c.fail(KindPivotFailure, effectiveChroot, err)
		}
		c.pivotedRoot = preRoot
		defer func() {
			_ = restore()
			c.pivotedRoot = nil
		}()
	}

	savedUser := c.User
	if resetCmnd {
		resolved, status := c.Resolver.Resolve(c.FS, c.User)
		c.User = resolved
		if info != nil {
			info.Status = status
		}
		defer func() { c.User = savedUser }()
	}

	rc := dispatchStrategy(c, rule, args, digests)

	if info != nil {
		info.Intercepted = c.Intercepted
		info.Path = c.User.Path
		if c.User.Stat != nil {
			info.Stat = *c.User.Stat
		}
	}

	return rc
}

// reconcileChroot applies spec.md §4.1's chroot-reconciliation table,
// returning the effective chroot to pivot into ("" means no pivot) and
// whether the user's command must be re-resolved after pivoting
// (reset_cmnd: true only when the rule names a chroot the user didn't
// request, so the pre-pivot resolution no longer applies).
func reconcileChroot(c *Context, ruleChroot string) (effective string, resetCmnd bool, ok bool) {
	if c.RequestedChroot != "" {
		if ruleChroot != "" && ruleChroot != "*" && ruleChroot != c.RequestedChroot {
			return "", false, false
		}
		return c.RequestedChroot, false, true
	}
	if ruleChroot == "" || ruleChroot == "*" {
		if c.Defaults.RunChroot != "" && c.Defaults.RunChroot != "*" {
			return c.Defaults.RunChroot, false, true
		}
		return "", false, true
	}
	return ruleChroot, true, true
}

func dispatchStrategy(c *Context, rule RuleCommand, args RuleArgs, digests DigestList) bool {
	switch rule.Kind {
	case RuleAll:
		return matchAll(c, digests)
	case RuleRegex:
		return matchRegex(c, rule, args, digests)
	case RulePseudo:
		return matchPseudo(c, rule, args)
	case RuleMeta:
		if c.Defaults.FastGlob {
			return matchFnmatch(c, rule, args, digests)
		}
		return matchGlob(c, rule, args, digests)
	case RuleDirectory:
		return matchDirectory(c, strings.TrimSuffix(rule.Raw, "/"), digests)
	case RuleLiteral:
		return matchNormal(c, rule, args, digests)
	default:
		return false
	}
}
