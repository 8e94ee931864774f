package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterceptOKNotIntercepted(t *testing.T) {
	st := FileStat{Mode: 0o4755}
	assert.True(t, interceptOK(false, false, st))
}

func TestInterceptOKInterceptedNonSetid(t *testing.T) {
	st := FileStat{Mode: 0o755}
	assert.True(t, interceptOK(true, false, st))
}

func TestInterceptOKInterceptedSetidRejected(t *testing.T) {
	st := FileStat{Mode: 0o4755}
	assert.False(t, interceptOK(true, false, st))
}

func TestInterceptOKInterceptedSetidAllowed(t *testing.T) {
	st := FileStat{Mode: 0o2755}
	assert.True(t, interceptOK(true, true, st))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "inode", ModeInode.String())
	assert.Equal(t, "name", ModeName.String())
}

func TestFileStatIsSetid(t *testing.T) {
	assert.True(t, FileStat{Mode: 0o4000}.IsSetid())
	assert.True(t, FileStat{Mode: 0o2000}.IsSetid())
	assert.False(t, FileStat{Mode: 0o755}.IsSetid())
}

func TestSameInode(t *testing.T) {
	a := FileStat{Dev: 1, Ino: 2}
	b := FileStat{Dev: 1, Ino: 2}
	c := FileStat{Dev: 1, Ino: 3}
	assert.True(t, SameInode(a, b))
	assert.False(t, SameInode(a, c))
}
