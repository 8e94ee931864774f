package match

import (
	"errors"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FileHandle is the minimal surface the opener, digest verifier, and
// set_cmnd_fd need from an open candidate executable. It deliberately
// exposes Fd() so set_cmnd_fd can clear FD_CLOEXEC directly, the way
// the C implementation does with fcntl(2).
type FileHandle interface {
	// ReadAt reads len(p) bytes starting at off, as used by the
	// shebang probe (pread(fd, magic, 2, 0) in the C) and the digest
	// verifier's streaming read.
	ReadAt(p []byte, off int64) (int, error)
	// Stat returns the identity/mode snapshot for this open file
	// (fstat, not stat-by-path — avoids a second TOCTOU window).
	Stat() (FileStat, error)
	// SetCloseOnExec toggles FD_CLOEXEC on the underlying descriptor.
	SetCloseOnExec(bool) error
	// Fd returns the raw descriptor number, used to build /dev/fd/N.
	Fd() uintptr
	Close() error
}

// FileSystem is the filesystem boundary the safe opener and glob
// strategy call through. Production code uses osFS; tests substitute
// an in-memory fake (internal/match/matchtest).
type FileSystem interface {
	// OpenReadNonblock opens path O_RDONLY|O_NONBLOCK.
	OpenReadNonblock(path string) (FileHandle, error)
	// OpenExecOnly opens path for execute-only access (O_PATH/O_EXEC),
	// the fallback the C implementation takes when O_RDONLY fails
	// with EACCES and no digest is required.
	OpenExecOnly(path string) (FileHandle, error)
	// Stat stats path directly (used when no descriptor is open, e.g.
	// the ALL strategy's existence probe before any open attempt).
	Stat(path string) (FileStat, error)
	// Glob expands a glob(3)-style pattern, unsorted, the way
	// glob(pattern, GLOB_NOSORT, ...) does.
	Glob(pattern string) ([]string, error)
	// Canonicalize resolves symlinks in dir and returns a fresh
	// absolute path, or an error if dir cannot be resolved.
	Canonicalize(dir string) (string, error)
	// PathExists reports whether path exists, used for the /dev/fd/N
	// probe in set_cmnd_fd.
	PathExists(path string) bool
}

// ErrAccessDenied wraps EACCES-equivalent failures from the
// filesystem so opener.go can distinguish "permission denied" from
// other open failures without depending on a concrete OS error type.
var ErrAccessDenied = errors.New("match: access denied")

// ErrNotExist wraps ENOENT-equivalent failures.
var ErrNotExist = errors.New("match: file does not exist")

type osFS struct{}

// NewOSFileSystem returns the production FileSystem implementation,
// backed by golang.org/x/sys/unix so open/stat semantics (O_NONBLOCK,
// O_PATH fallback, FD_CLOEXEC) match the C implementation exactly
// rather than whatever os.OpenFile's portable subset allows.
func NewOSFileSystem() FileSystem { return osFS{} }

type osHandle struct {
	fd   int
	name string
}

func (h *osHandle) ReadAt(p []byte, off int64) (int, error) {
	n, err := unix.Pread(h.fd, p, off)
	if err != nil {
		return n, err
	}
	return n, nil
}

func (h *osHandle) Stat() (FileStat, error) {
	var st unix.Stat_t
	if err := unix.Fstat(h.fd, &st); err != nil {
		return FileStat{}, err
	}
	return statFromUnix(st), nil
}

func (h *osHandle) SetCloseOnExec(on bool) error {
	flags, err := unix.FcntlInt(uintptr(h.fd), unix.F_GETFD, 0)
	if err != nil {
		return err
	}
	if on {
		flags |= unix.FD_CLOEXEC
	} else {
		flags &^= unix.FD_CLOEXEC
	}
	_, err = unix.FcntlInt(uintptr(h.fd), unix.F_SETFD, flags)
	return err
}

func (h *osHandle) Fd() uintptr { return uintptr(h.fd) }

func (h *osHandle) Close() error {
	if h.fd < 0 {
		return nil
	}
	return unix.Close(h.fd)
}

func statFromUnix(st unix.Stat_t) FileStat {
	return FileStat{
		Dev:  uint64(st.Dev),  //nolint:unconvert // width varies per platform
		Ino:  uint64(st.Ino),  //nolint:unconvert
		Mode: uint32(st.Mode), //nolint:unconvert
	}
}

func (osFS) OpenReadNonblock(path string) (FileHandle, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, translateOpenErr(err)
	}
	return &osHandle{fd: fd, name: path}, nil
}

func (osFS) OpenExecOnly(path string) (FileHandle, error) {
	fd, err := unix.Open(path, execOnlyFlag, 0)
	if err != nil {
		return nil, translateOpenErr(err)
	}
	return &osHandle{fd: fd, name: path}, nil
}

func (osFS) Stat(path string) (FileStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileStat{}, translateOpenErr(err)
	}
	return statFromUnix(st), nil
}

func (osFS) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (osFS) Canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func (osFS) PathExists(path string) bool {
	var st unix.Stat_t
	return unix.Stat(path, &st) == nil
}

func translateOpenErr(err error) error {
	switch {
	case errors.Is(err, unix.EACCES):
		return ErrAccessDenied
	case errors.Is(err, unix.ENOENT):
		return ErrNotExist
	default:
		return err
	}
}
