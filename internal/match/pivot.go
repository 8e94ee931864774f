package match

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// RootRef lets set_cmnd_fd probe for /dev/fd/N either against the
// live absolute filesystem or, when a pivot is in effect, against the
// pre-pivot root — exactly the C implementation's "fstatat(rootfd,
// "dev/fd/%d", ...) vs stat("/dev/fd/%d", ...)" branch (spec.md §4.4).
type RootRef interface {
	// Exists reports whether relPath (e.g. "dev/fd/7") exists
	// relative to this root reference.
	Exists(relPath string) bool
}

// absoluteRootRef is used when no pivot occurred: /dev/fd/N is
// resolved against the live root.
type absoluteRootRef struct{ fs FileSystem }

func (r absoluteRootRef) Exists(relPath string) bool {
	return r.fs.PathExists("/" + relPath)
}

// pivotedRootRef wraps the descriptor pivot_root saved for the
// pre-pivot root, so /dev/fd/N can still be resolved against it after
// the process has chrooted elsewhere.
type pivotedRootRef struct{ fd int }

func (r pivotedRootRef) Exists(relPath string) bool {
	var st unix.Stat_t
	return unix.Fstatat(r.fd, relPath, &st, 0) == nil
}

// RootPivot is the §4.6 "Root pivot" component: captures descriptors
// for the current root and working directory, changes root to
// newRoot, and returns a restore function that undoes both. On
// failure, no state is changed and any descriptors opened during the
// attempt are already closed.
type RootPivot interface {
	Pivot(newRoot string) (restore func() error, preRoot RootRef, err error)
}

type unixRootPivot struct{}

// NewRootPivot returns the production RootPivot, built on
// golang.org/x/sys/unix since neither os nor syscall expose Chroot
// with the open-then-fchdir restoration pattern this needs portably.
func NewRootPivot() RootPivot { return unixRootPivot{} }

func (unixRootPivot) Pivot(newRoot string) (func() error, RootRef, error) {
	rootFd, err := unix.Open("/", unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("match: open / for pivot: %w", err)
	}
	cwdFd, err := unix.Open(".", unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		_ = unix.Close(rootFd)
		return nil, nil, fmt.Errorf("match: open . for pivot: %w", err)
	}

	if err := unix.Chroot(newRoot); err != nil {
		_ = unix.Close(rootFd)
		_ = unix.Close(cwdFd)
		return nil, nil, fmt.Errorf("match: chroot %s: %w", newRoot, err)
	}
	if err := unix.Chdir("/"); err != nil {
		// Root has already changed; restore root, then working
		// directory, as best-effort before surfacing the failure.
		if unix.Fchdir(rootFd) == nil {
			_ = unix.Chroot(".")
		}
		_ = unix.Fchdir(cwdFd)
		_ = unix.Close(rootFd)
		_ = unix.Close(cwdFd)
		return nil, nil, fmt.Errorf("match: chdir / after chroot: %w", err)
	}

	restored := false
	restore := func() error {
		if restored {
			return nil
		}
		restored = true
		// Restore root first (fchdir to the saved root, chroot "."),
		// then the working directory, then close both.
		rootErr := unix.Fchdir(rootFd)
		if rootErr == nil {
			rootErr = unix.Chroot(".")
		}
		cwdErr := unix.Fchdir(cwdFd)
		_ = unix.Close(rootFd)
		_ = unix.Close(cwdFd)
		if rootErr != nil {
			return fmt.Errorf("match: restore root after pivot: %w", rootErr)
		}
		if cwdErr != nil {
			return fmt.Errorf("match: restore cwd after pivot: %w", cwdErr)
		}
		return nil
	}

	return restore, pivotedRootRef{fd: rootFd}, nil
}
