package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privguard/privguard/internal/match/matchtest"
)

func TestOpenWithEscalationBracketsOpen(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/usr/bin/ls", 1, 100, 0o755, []byte("binary"))

	user := UserCommand{Literal: "/usr/bin/ls", Dir: "/usr/bin", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)
	c.Defaults.FdExec = FdExecAlways
	esc := &matchtest.Escalator{}
	c.Escalate = esc

	rule := NewRuleCommand("/usr/bin/ls", false)
	ok := matchNormal(c, rule, RuleArgs{Kind: ArgsAny}, nil)

	require.True(t, ok)
	assert.Equal(t, []string{"/usr/bin/ls"}, esc.Reasons)
}

func TestOpenWithEscalationFailurePropagates(t *testing.T) {
	fs := matchtest.NewFS()
	fs.Put("/usr/bin/ls", 1, 100, 0o755, []byte("binary"))

	user := UserCommand{Literal: "/usr/bin/ls", Dir: "/usr/bin", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)
	c.Defaults.FdExec = FdExecAlways
	c.Escalate = &matchtest.Escalator{ErrOverride: errors.New("seteuid denied")}

	rule := NewRuleCommand("/usr/bin/ls", false)
	assert.False(t, matchNormal(c, rule, RuleArgs{Kind: ArgsAny}, nil))
}

func TestOpenWithEscalationNilSkipsBracketing(t *testing.T) {
	fs := matchtest.NewFS()
	user := UserCommand{Literal: "/usr/bin/ls", Dir: "/usr/bin", Base: "ls"}
	c := newTestContext(fs, user, ModeInode)

	fh, err := openWithEscalation(c, "/usr/bin/ls", nil)
	require.NoError(t, err)
	assert.Nil(t, fh)
}
