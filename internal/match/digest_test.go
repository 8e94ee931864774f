package match

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyDigestsEmptyIsVacuouslyTrue(t *testing.T) {
	ok, err := verifyDigests(NewDigestEngine(), nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyDigestsNilHandleWithRequiredDigest(t *testing.T) {
	digests := DigestList{{Algorithm: "sha256", Expected: []byte{1, 2, 3}}}
	ok, err := verifyDigests(NewDigestEngine(), nil, digests)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyDigestsMatchesAnyInList(t *testing.T) {
	content := []byte("#!/bin/sh\necho hi\n")
	sum := sha256.Sum256(content)

	fh := &memHandle{content: content}
	digests := DigestList{
		{Algorithm: "sha256", Expected: []byte{0xDE, 0xAD}},
		{Algorithm: "sha256", Expected: sum[:]},
	}
	ok, err := verifyDigests(NewDigestEngine(), fh, digests)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyDigestsNoneMatch(t *testing.T) {
	content := []byte("payload")
	fh := &memHandle{content: content}
	digests := DigestList{{Algorithm: "sha256", Expected: []byte{0, 0, 0}}}
	ok, err := verifyDigests(NewDigestEngine(), fh, digests)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyDigestsUnsupportedAlgorithm(t *testing.T) {
	fh := &memHandle{content: []byte("x")}
	digests := DigestList{{Algorithm: "md5", Expected: []byte{0}}}
	_, err := verifyDigests(NewDigestEngine(), fh, digests)
	assert.Error(t, err)
}

// memHandle is a minimal FileHandle backed by an in-memory byte slice,
// used where a test only needs ReadAt (e.g. digest verification)
// without the rest of matchtest.FS's bookkeeping.
type memHandle struct {
	content []byte
	closed  bool
}

func (h *memHandle) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(h.content)) {
		return 0, nil
	}
	n := copy(p, h.content[off:])
	return n, nil
}

func (h *memHandle) Stat() (FileStat, error) { return FileStat{}, nil }
func (h *memHandle) SetCloseOnExec(bool) error { return nil }
func (h *memHandle) Fd() uintptr               { return 7 }
func (h *memHandle) Close() error {
	h.closed = true
	return nil
}
