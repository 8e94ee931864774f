package match

// statByHandleOrPath implements do_stat(): prefer an fstat on an
// already-open handle (avoids a second TOCTOU window); fall back to
// stat-by-path only when no handle is open.
func statByHandleOrPath(fs FileSystem, fh FileHandle, path string) (FileStat, bool) {
	if fh != nil {
		st, err := fh.Stat()
		return st, err == nil
	}
	st, err := fs.Stat(path)
	return st, err == nil
}
