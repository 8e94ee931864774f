package match

import (
	"errors"
	"strconv"
)

// openCommand implements the §4.3 "Safe opener": it only opens path
// when fdexec demands it or a digest check is pending, falls back to
// execute-only access when read is denied and no digest is required,
// and reports failure when neither path can produce a usable
// descriptor.
//
// Returns (nil, nil) for the "skip opening, exec by path" case —
// callers must treat a nil, nil-error FileHandle as "none", not as a
// failure.
func openCommand(fs FileSystem, path string, digests DigestList, fdexec FdExecMode) (FileHandle, error) {
	if fdexec != FdExecAlways && len(digests) == 0 {
		return nil, nil
	}

	fh, err := fs.OpenReadNonblock(path)
	if err == nil {
		return fh, nil
	}
	if errors.Is(err, ErrAccessDenied) && len(digests) == 0 {
		fh, retryErr := fs.OpenExecOnly(path)
		if retryErr == nil {
			return fh, nil
		}
		return nil, retryErr
	}
	return nil, err
}

// isScript reports whether fh's first two bytes are "#!", the way
// is_script() peeks with pread(fd, magic, 2, 0).
func isScript(fh FileHandle) bool {
	var magic [2]byte
	n, err := fh.ReadAt(magic[:], 0)
	if err != nil || n != 2 {
		return false
	}
	return magic[0] == '#' && magic[1] == '!'
}

// setCmndFD implements §4.4: it closes any previously published
// descriptor, then decides whether fh (or "none") becomes the new
// cmnd_fd, applying the fdexec=never rule and the shebang-script
// /dev/fd/N survivability check. root is the RootRef to resolve
// /dev/fd/N against (the live root, or the pre-pivot root when a
// pivot is in effect).
func (c *Context) setCmndFD(fh FileHandle, root RootRef) {
	if c.cmndFD != nil {
		_ = c.cmndFD.Close()
		c.cmndFD = nil
	}

	if fh == nil {
		return
	}

	if c.Defaults.FdExec == FdExecNever {
		_ = fh.Close()
		return
	}

	if isScript(fh) {
		devFd := devFdPath(fh.Fd())
		if !root.Exists(devFd) {
			// Missing /dev/fd file: fexecve(2) can't be used for
			// scripts on this system.
			_ = fh.Close()
			return
		}
		// The interpreter reopens /dev/fd/N by name, so the
		// descriptor must survive that second lookup.
		_ = fh.SetCloseOnExec(false)
	}

	c.cmndFD = fh
}

func devFdPath(fd uintptr) string {
	return "dev/fd/" + strconv.FormatUint(uint64(fd), 10)
}
