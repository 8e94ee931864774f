package match

import (
	"testing"

	"github.com/privguard/privguard/internal/match/matchtest"
	"github.com/stretchr/testify/assert"
)

func TestMatchGlobExactPathPassSuccess(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/usr/bin/ls", 1, 10, 0o755, nil)
	fs.GlobResults["/usr/bin/l*"] = []string{"/usr/bin/ls", "/usr/bin/lpr"}

	user := UserCommand{Literal: "/usr/bin/ls", Base: "ls", Stat: &FileStat{Dev: 1, Ino: 10}}
	c := newTestContext(fs, user, ModeInode)

	rule := NewRuleCommand("/usr/bin/l*", false)
	assert.Equal(t, RuleMeta, rule.Kind)
	assert.True(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, nil))
	assert.Equal(t, "/usr/bin/ls", c.SafeCmnd())
}

func TestMatchGlobExactPathInodeMismatchStopsEntirely(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/usr/bin/ls", 1, 10, 0o755, nil)
	fs.GlobResults["/usr/bin/l*"] = []string{"/usr/bin/ls"}

	// user_stat disagrees with what's on disk: the exact-path pass
	// must fail closed and never fall through to the basename pass.
	user := UserCommand{Literal: "/usr/bin/ls", Base: "ls", Stat: &FileStat{Dev: 1, Ino: 999}}
	c := newTestContext(fs, user, ModeInode)

	rule := NewRuleCommand("/usr/bin/l*", false)
	assert.False(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, nil))
}

func TestMatchGlobDigestMismatchPoisonsBasenamePass(t *testing.T) {
	fs := matchtest.NewFS()
	// Two glob expansions share the user's basename: the exact-path
	// match (same literal string as user_cmnd) has a bad digest, and
	// the basename-pass candidate must NOT be tried once poisoned.
	fs.Put("/usr/bin/ls", 1, 10, 0o755, []byte("real binary"))
	fs.Put("/opt/bin/ls", 2, 20, 0o755, []byte("real binary"))
	fs.GlobResults["/*/bin/ls"] = []string{"/usr/bin/ls", "/opt/bin/ls"}

	user := UserCommand{Literal: "/usr/bin/ls", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)

	digests := DigestList{{Algorithm: "sha256", Expected: []byte{0xDE, 0xAD, 0xBE, 0xEF}}}
	rule := NewRuleCommand("/*/bin/ls", false)
	assert.False(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, digests))
	// The basename pass must never even have tried to open the second
	// candidate once the exact-path pass recorded a digest mismatch.
	assert.NotContains(t, fs.OpenAttempts, "/opt/bin/ls")
}

func TestMatchGlobBasenamePassOnlyMismatchDoesNotPoison(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/opt/bin/ls", 2, 20, 0o755, nil)
	fs.GlobResults["/*/bin/ls"] = []string{"/usr/bin/ls", "/opt/bin/ls"}
	// "/usr/bin/ls" is listed by glob but doesn't exist on disk, so the
	// exact-path pass (since it's not user_cmnd anyway, user is
	// relative here) never runs; this exercises pure basename-pass
	// behavior skipping a nonexistent entry without poisoning.

	user := UserCommand{Literal: "ls", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)

	rule := NewRuleCommand("/*/bin/ls", false)
	assert.True(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, nil))
	assert.Equal(t, "/opt/bin/ls", c.SafeCmnd())
}

func TestMatchGlobShortCircuitsOnLiteralBasenameMismatch(t *testing.T) {
	fs := matchtest.NewFS()
	user := UserCommand{Literal: "/usr/bin/cat", Base: "cat"}
	c := newTestContext(fs, user, ModeInode)

	// Basename has no meta chars and differs from user_base: must fail
	// without ever expanding the glob.
	rule := RuleCommand{Kind: RuleMeta, Raw: "/usr/bin/ls"}
	assert.False(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, nil))
	assert.Empty(t, fs.OpenAttempts)
}

func TestMatchGlobDirectoryEntryBypassesArgMatch(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/usr/bin/ls", 1, 10, 0o755, nil)
	fs.GlobResults["/usr/*/"] = []string{"/usr/bin/"}
	fs.Aliases["/usr/bin"] = "/usr/bin"

	user := UserCommand{Literal: "/usr/bin/ls", Dir: "/usr/bin", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)

	rule := NewRuleCommand("/usr/*/", false)
	// An ArgsNone rule would normally reject any non-empty user args,
	// but a directory-spec glob entry bypasses argument matching
	// entirely once it succeeds.
	user.Args = "-la"
	c.User = user
	assert.True(t, matchGlob(c, rule, RuleArgs{Kind: ArgsNone}, nil))
}

func TestMatchGlobNameModeReducesToFnmatch(t *testing.T) {
	fs := matchtest.NewFS()
	user := UserCommand{Literal: "/usr/bin/ls", Base: "ls"}
	c := newTestContext(fs, user, ModeName)

	rule := NewRuleCommand("/usr/bin/l*", false)
	assert.True(t, matchGlob(c, rule, RuleArgs{Kind: ArgsAny}, nil))
}
