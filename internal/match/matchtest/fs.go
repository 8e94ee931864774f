// Package matchtest provides in-memory fakes for match.FileSystem,
// match.RootPivot, the path resolver and the privilege escalator so
// the core matching logic can be exercised deterministically, without
// touching a real filesystem. Digests are computed by the real
// match.DigestEngine over the fake file contents.
package matchtest

import (
	"bytes"
	"sort"
	"strings"

	"github.com/privguard/privguard/internal/match"
)

// Entry describes one simulated file or directory.
type Entry struct {
	Dev, Ino uint64
	Mode     uint32
	Content  []byte
	IsDir    bool
}

// FS is an in-memory match.FileSystem keyed by absolute path. Symlinks
// are not modeled: Canonicalize returns the caller-supplied Aliases
// entry for a path, or else the path with any trailing "/" removed.
type FS struct {
	Entries      map[string]Entry
	Aliases      map[string]string // path -> canonical path, for Canonicalize
	DeniedPaths  map[string]bool   // paths that open with EACCES
	GlobResults  map[string][]string
	OpenAttempts []string
}

// NewFS returns an empty fake filesystem.
func NewFS() *FS {
	return &FS{
		Entries:     map[string]Entry{},
		Aliases:     map[string]string{},
		DeniedPaths: map[string]bool{},
		GlobResults: map[string][]string{},
	}
}

// Put registers a regular file at path.
func (f *FS) Put(path string, dev, ino uint64, mode uint32, content []byte) {
	f.Entries[path] = Entry{Dev: dev, Ino: ino, Mode: mode, Content: content, IsDir: false}
}

// PutDir registers a directory at path.
func (f *FS) PutDir(path string, dev, ino uint64) {
	f.Entries[path] = Entry{Dev: dev, Ino: ino, Mode: 0o40755, IsDir: true}
}

func (f *FS) statEntry(path string) (match.FileStat, bool) {
	e, ok := f.Entries[path]
	if !ok {
		return match.FileStat{}, false
	}
	return match.FileStat{Dev: e.Dev, Ino: e.Ino, Mode: e.Mode}, true
}

// handle is the fake match.FileHandle.
type handle struct {
	path   string
	stat   match.FileStat
	r      *bytes.Reader
	closed bool
	cloexc bool
}

func (h *handle) ReadAt(p []byte, off int64) (int, error) {
	return h.r.ReadAt(p, off)
}

func (h *handle) Stat() (match.FileStat, error) { return h.stat, nil }

func (h *handle) SetCloseOnExec(on bool) error {
	h.cloexc = on
	return nil
}

func (h *handle) Fd() uintptr { return 42 }

func (h *handle) Close() error {
	h.closed = true
	return nil
}

func (f *FS) OpenReadNonblock(path string) (match.FileHandle, error) {
	f.OpenAttempts = append(f.OpenAttempts, path)
	if f.DeniedPaths[path] {
		return nil, match.ErrAccessDenied
	}
	e, ok := f.Entries[path]
	if !ok || e.IsDir {
		return nil, match.ErrNotExist
	}
	return &handle{path: path, stat: match.FileStat{Dev: e.Dev, Ino: e.Ino, Mode: e.Mode}, r: bytes.NewReader(e.Content)}, nil
}

func (f *FS) OpenExecOnly(path string) (match.FileHandle, error) {
	e, ok := f.Entries[path]
	if !ok || e.IsDir {
		return nil, match.ErrNotExist
	}
	return &handle{path: path, stat: match.FileStat{Dev: e.Dev, Ino: e.Ino, Mode: e.Mode}, r: bytes.NewReader(e.Content)}, nil
}

func (f *FS) Stat(path string) (match.FileStat, error) {
	st, ok := f.statEntry(path)
	if !ok {
		return match.FileStat{}, match.ErrNotExist
	}
	return st, nil
}

func (f *FS) Glob(pattern string) ([]string, error) {
	if results, ok := f.GlobResults[pattern]; ok {
		out := make([]string, len(results))
		copy(out, results)
		return out, nil
	}
	return nil, nil
}

func (f *FS) Canonicalize(path string) (string, error) {
	if alias, ok := f.Aliases[path]; ok {
		return alias, nil
	}
	return strings.TrimSuffix(path, "/"), nil
}

func (f *FS) PathExists(path string) bool {
	_, ok := f.Entries[path]
	return ok
}

// SortedGlobPaths is a convenience for tests that want deterministic
// GlobResults regardless of insertion order.
func SortedGlobPaths(paths ...string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}
