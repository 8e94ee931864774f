// Package match implements the command-matching core of a
// privilege-escalation policy engine: given what a user typed and a
// single parsed policy rule, it decides whether the rule admits the
// command, and publishes the trusted path and an open file descriptor
// for the caller's later execution stage.
//
// The core is modeled on sudo's plugins/sudoers/match_command.c. It
// never parses policy text, never decides runas identity, never
// executes anything, and never logs audit records — those are named
// external collaborators (spec.md §6).
package match

import "fmt"

// FdExecMode controls when the safe opener actually opens a
// descriptor for the candidate executable (spec.md §4.3, §6 defaults
// store).
type FdExecMode int

const (
	// FdExecDigestOnly only opens a descriptor when a digest check is
	// required; otherwise the caller execs by path.
	FdExecDigestOnly FdExecMode = iota
	// FdExecAlways always opens and, when possible, publishes a
	// descriptor for descriptor-based execution.
	FdExecAlways
	// FdExecNever never publishes a descriptor for execution, even if
	// one was opened for digest verification.
	FdExecNever
)

func ParseFdExecMode(s string) (FdExecMode, error) {
	switch s {
	case "", "digest_only":
		return FdExecDigestOnly, nil
	case "always":
		return FdExecAlways, nil
	case "never":
		return FdExecNever, nil
	default:
		return FdExecDigestOnly, fmt.Errorf("match: unknown fdexec mode %q", s)
	}
}

// Defaults mirrors the subset of the "Defaults store" (spec.md §6)
// this package consults. The policy layer owns the full defaults set;
// this is only what command-matching needs.
type Defaults struct {
	FdExec              FdExecMode
	FastGlob            bool
	InterceptAllowSetid bool
	RunChroot           string // "" = unset, "*" = any
}

// PseudoKind enumerates the recognized pseudo-commands (spec.md §3
// RuleCommand "Pseudo-command" variant).
type PseudoKind string

const (
	PseudoList     PseudoKind = "list"
	PseudoSudoedit PseudoKind = "sudoedit"
)

// IsRecognizedPseudo reports whether s names a pseudo-command the
// dispatcher knows how to match.
func IsRecognizedPseudo(s string) bool {
	return s == string(PseudoList) || s == string(PseudoSudoedit)
}

// RuleCommandKind is the tagged-variant discriminant for a rule's
// command field (spec.md §3, §9 "Polymorphism over shapes → tagged
// variant").
type RuleCommandKind int

const (
	// RuleAll is the ALL sentinel: the rule's command field is
	// absent/null.
	RuleAll RuleCommandKind = iota
	// RuleRegex begins with '^' and ends with '$'.
	RuleRegex
	// RulePseudo is a bare identifier not starting with '/'.
	RulePseudo
	// RuleMeta starts with '/' and contains shell meta characters;
	// dispatched to either the glob or fnmatch strategy depending on
	// Defaults.FastGlob.
	RuleMeta
	// RuleDirectory starts with '/' and ends with '/'.
	RuleDirectory
	// RuleLiteral starts with '/', has no meta characters, no
	// trailing slash.
	RuleLiteral
)

// RuleCommand is one command field from a policy rule, already
// classified by shape. Construct with NewRuleCommand; the dispatcher
// never re-inspects raw bytes once this exists (spec.md §9).
type RuleCommand struct {
	Kind RuleCommandKind
	Raw  string // empty for RuleAll
}

// NewRuleCommand classifies raw (the rule's command field as parsed
// by the policy layer) into a RuleCommand. Pass isAll=true when the
// rule's command is absent/null; raw is ignored in that case.
func NewRuleCommand(raw string, isAll bool) RuleCommand {
	if isAll {
		return RuleCommand{Kind: RuleAll}
	}
	switch {
	case len(raw) >= 2 && raw[0] == '^' && raw[len(raw)-1] == '$':
		return RuleCommand{Kind: RuleRegex, Raw: raw}
	case len(raw) == 0 || raw[0] != '/':
		return RuleCommand{Kind: RulePseudo, Raw: raw}
	case HasMeta(raw):
		return RuleCommand{Kind: RuleMeta, Raw: raw}
	case raw[len(raw)-1] == '/':
		return RuleCommand{Kind: RuleDirectory, Raw: raw}
	default:
		return RuleCommand{Kind: RuleLiteral, Raw: raw}
	}
}

// RuleArgsKind is the tagged-variant discriminant for a rule's
// argument pattern (spec.md §3 RuleArgs).
type RuleArgsKind int

const (
	// ArgsAny means the field is absent: any args are allowed.
	ArgsAny RuleArgsKind = iota
	// ArgsNone is the literal two-character string `""`: no args
	// allowed.
	ArgsNone
	// ArgsRegex is `^...$`: matched as an extended regex.
	ArgsRegex
	// ArgsFnmatch is anything else: matched with fnmatch semantics.
	ArgsFnmatch
)

// RuleArgs is the optional argument pattern attached to a rule.
type RuleArgs struct {
	Kind    RuleArgsKind
	Pattern string // meaningful for ArgsRegex/ArgsFnmatch
}

// NewRuleArgs classifies raw. Pass present=false when the rule has no
// args field at all (distinct from the present-but-empty `""` form).
func NewRuleArgs(raw string, present bool) RuleArgs {
	if !present {
		return RuleArgs{Kind: ArgsAny}
	}
	if raw == `""` {
		return RuleArgs{Kind: ArgsNone}
	}
	if len(raw) >= 2 && raw[0] == '^' && raw[len(raw)-1] == '$' {
		return RuleArgs{Kind: ArgsRegex, Pattern: raw}
	}
	return RuleArgs{Kind: ArgsFnmatch, Pattern: raw}
}

// DigestSpec is one (algorithm, expected-digest) pair.
type DigestSpec struct {
	Algorithm string // e.g. "sha256", "sha512"
	Expected  []byte
}

// DigestList is an ordered list of acceptable digests. An empty list
// means integrity is not required (spec.md §3, §GLOSSARY).
type DigestList []DigestSpec

// FileStat is the minimal identity/mode snapshot the core needs:
// (device, inode) for TOCTOU-safe identity comparison, and mode bits
// for the setid intercept guard.
type FileStat struct {
	Dev  uint64
	Ino  uint64
	Mode uint32 // raw st_mode bits, including S_ISUID/S_ISGID
}

const (
	modeISUID = 0o4000
	modeISGID = 0o2000
)

// IsSetid reports whether the setuid or setgid bit is set.
func (s FileStat) IsSetid() bool {
	return s.Mode&(modeISUID|modeISGID) != 0
}

// SameInode reports whether a and b name the same filesystem object.
func SameInode(a, b FileStat) bool {
	return a.Dev == b.Dev && a.Ino == b.Ino
}

// Status is the outcome of the external user-command resolver
// (set_cmnd_path in spec.md §6).
type Status int

const (
	StatusNotResolved Status = iota
	StatusFound
	StatusNotFound
)

// UserCommand is what the user asked to run, resolved as far as the
// external collaborators (spec.md §6) could manage.
type UserCommand struct {
	Literal string    // the command string as typed
	Path    string    // canonical absolute path, "" if unresolved
	Dir     string    // canonicalized parent directory of Path, "" if unknown
	Base    string    // basename
	Args    string    // arguments as a single string, possibly empty
	Stat    *FileStat // stat of the resolved path, nil if unavailable
}

// CommandInfo is the output record a caller threads through a
// dispatch call. When non-nil, the dispatcher publishes the
// (possibly re-resolved, possibly pivoted) path and stat here instead
// of mutating global UserCommand state.
type CommandInfo struct {
	Intercepted bool
	Status      Status
	Path        string
	Stat        FileStat
}
