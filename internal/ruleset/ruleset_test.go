package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privguard/privguard/internal/match"
)

func TestParseMinimalRuleSet(t *testing.T) {
	doc := `
fdexec = "always"
fast_glob = true
runchroot = "/srv/jail"

[[rule]]
command = "/usr/bin/ls"
args = "-l *.txt"
`
	rs, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, match.FdExecAlways, rs.Defaults.FdExec)
	assert.True(t, rs.Defaults.FastGlob)
	assert.Equal(t, "/srv/jail", rs.Defaults.RunChroot)

	require.Len(t, rs.Rules, 1)
	r := rs.Rules[0]
	assert.Equal(t, match.RuleLiteral, r.Command.Kind)
	assert.Equal(t, "/usr/bin/ls", r.Command.Raw)
	assert.Equal(t, match.ArgsFnmatch, r.Args.Kind)
}

func TestParseEmptyRuleSetRejected(t *testing.T) {
	_, err := Parse([]byte(`fdexec = "never"`))
	assert.ErrorIs(t, err, ErrEmptyRuleSet)
}

func TestParseInvalidFdExec(t *testing.T) {
	_, err := Parse([]byte(`
fdexec = "sometimes"

[[rule]]
all = true
`))
	assert.Error(t, err)
}

func TestParseArgsAbsentIsUnrestricted(t *testing.T) {
	rs, err := Parse([]byte(`
[[rule]]
command = "/bin/ls"
`))
	require.NoError(t, err)
	assert.Equal(t, match.ArgsAny, rs.Rules[0].Args.Kind)
}

func TestParseArgsPresentEmptyMeansNoArgs(t *testing.T) {
	rs, err := Parse([]byte(`
[[rule]]
command = "/bin/ls"
args = ""
`))
	require.NoError(t, err)
	assert.Equal(t, match.ArgsFnmatch, rs.Rules[0].Args.Kind)
	assert.Equal(t, "", rs.Rules[0].Args.Pattern)
}

func TestParseDigests(t *testing.T) {
	rs, err := Parse([]byte(`
[[rule]]
command = "/bin/ls"
digest_algorithm = "sha256"
digests = ["deadbeef", "00ff00ff"]
`))
	require.NoError(t, err)
	require.Len(t, rs.Rules[0].Digests, 2)
	assert.Equal(t, "sha256", rs.Rules[0].Digests[0].Algorithm)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, rs.Rules[0].Digests[0].Expected)
	assert.Equal(t, []byte{0x00, 0xff, 0x00, 0xff}, rs.Rules[0].Digests[1].Expected)
}

func TestParseBadDigestHex(t *testing.T) {
	_, err := Parse([]byte(`
[[rule]]
command = "/bin/ls"
digests = ["not-hex"]
`))
	assert.Error(t, err)
}

func TestParseAllRule(t *testing.T) {
	rs, err := Parse([]byte(`
[[rule]]
all = true
`))
	require.NoError(t, err)
	assert.Equal(t, match.RuleAll, rs.Rules[0].Command.Kind)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rule]]
command = "/usr/bin/id"
`), 0o644))

	rs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 1)
	assert.Equal(t, "/usr/bin/id", rs.Rules[0].Command.Raw)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
