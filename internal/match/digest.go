package match

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
)

// DigestEngine computes a digest of the given algorithm over an open
// file's bytes (spec.md §6 "Digest engine"). Adapted from the
// teacher's filevalidator.HashAlgorithm, generalized to a named
// algorithm registry since a DigestList may mix algorithms.
type DigestEngine interface {
	// Sum streams r and returns the raw digest bytes for algorithm,
	// or an error if algorithm is unsupported.
	Sum(algorithm string, r io.Reader) ([]byte, error)
}

type stdDigestEngine struct{}

// NewDigestEngine returns the production DigestEngine, backed by the
// standard library's SHA-2 family — the same family the teacher's
// filevalidator package uses for its manifest hashes.
func NewDigestEngine() DigestEngine { return stdDigestEngine{} }

func (stdDigestEngine) Sum(algorithm string, r io.Reader) ([]byte, error) {
	var h hash.Hash
	switch algorithm {
	case "sha256":
		h = sha256.New()
	case "sha224":
		h = sha256.New224()
	case "sha384":
		h = sha512.New384()
	case "sha512":
		h = sha512.New()
	default:
		return nil, fmt.Errorf("match: unsupported digest algorithm %q", algorithm)
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// fileReader adapts a FileHandle (ReadAt-based) to io.Reader for the
// digest engine, starting from offset 0 and reading to EOF.
type fileReader struct {
	h   FileHandle
	off int64
}

func (r *fileReader) Read(p []byte) (int, error) {
	n, err := r.h.ReadAt(p, r.off)
	r.off += int64(n)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

// verifyDigests implements the "Digest verifier" component (spec.md
// §4.3 budget item 3): succeeds vacuously if digests is empty,
// otherwise succeeds if any listed (algorithm, expected) pair matches
// the bytes behind fh. A nil fh (no descriptor available) can only
// satisfy an empty digest list.
func verifyDigests(engine DigestEngine, fh FileHandle, digests DigestList) (bool, error) {
	if len(digests) == 0 {
		return true, nil
	}
	if fh == nil {
		return false, nil
	}
	for _, d := range digests {
		sum, err := engine.Sum(d.Algorithm, &fileReader{h: fh})
		if err != nil {
			return false, err
		}
		if bytes.Equal(sum, d.Expected) {
			return true, nil
		}
	}
	return false, nil
}
