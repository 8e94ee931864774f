package match

import (
	"regexp"
	"strings"

	wildcard "github.com/IGLOU-EU/go-wildcard/v2"
)

// matchArgs implements the §4.2 argument matcher contract exactly:
//
//   - RuleArgs absent            -> always true (unrestricted)
//   - RuleArgs == `""`           -> true iff userArgs == ""
//   - RuleArgs `^...$`           -> extended-regex match against userArgs
//   - otherwise                  -> fnmatch, with path-separator
//     respect enabled iff the rule command is the sudoedit
//     pseudo-command
//
// A regex compile failure is not fatal to the enclosing decision: it
// yields a non-match plus a debug diagnostic through logger; no
// MatchError is recorded for it.
func matchArgs(logger diagLogger, ruleArgs RuleArgs, isSudoedit bool, userArgs string) bool {
	switch ruleArgs.Kind {
	case ArgsAny:
		return true
	case ArgsNone:
		return userArgs == ""
	case ArgsRegex:
		re, err := regexp.Compile(ruleArgs.Pattern)
		if err != nil {
			logger.logf("args regex %q failed to compile: %v", ruleArgs.Pattern, err)
			return false
		}
		return re.MatchString(userArgs)
	case ArgsFnmatch:
		return fnmatch(ruleArgs.Pattern, userArgs, isSudoedit)
	default:
		return false
	}
}

// fnmatch matches pattern against s using shell wildcard semantics.
// When pathname is true, '*' and '?' never match a '/': the string is
// matched one '/'-delimited segment at a time, mirroring glibc
// fnmatch(3)'s FNM_PATHNAME flag, which sudo sets whenever the
// sudoedit pseudo-command is in play (its arguments are always
// paths).
func fnmatch(pattern, s string, pathname bool) bool {
	if !pathname {
		return wildcard.Match(pattern, s)
	}
	patSegs := strings.Split(pattern, "/")
	strSegs := strings.Split(s, "/")
	if len(patSegs) != len(strSegs) {
		return false
	}
	for i := range patSegs {
		if !wildcard.Match(patSegs[i], strSegs[i]) {
			return false
		}
	}
	return true
}

// diagLogger is the minimal "debug/diag sink" collaborator (spec.md
// §6) the argument matcher and strategies need: one that formats and
// forwards, never observable in the return value.
type diagLogger interface {
	logf(format string, args ...any)
}
