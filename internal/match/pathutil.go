package match

import "strings"

// metaChars are the shell glob/fnmatch meta characters sudo's
// has_meta() recognizes: backslash, question mark, star, and the
// bracket pair.
const metaChars = `\?*[]`

// HasMeta reports whether s contains any glob meta character.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, metaChars)
}

// Basename returns the final path component of s, the way sudo's
// sudo_basename() does: everything after the last '/', or the whole
// string if there is none. Unlike path/filepath.Base, it performs no
// cleaning and never returns "." for an empty input.
func Basename(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// DirName returns everything before the final '/' in s, or "" if
// there is no '/'. Used to slice a rule command into directory +
// basename before canonicalizing the directory half.
func DirName(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return ""
}

// JoinPath builds "dir/base", enforcing the same PathMax bound the C
// implementation's snprintf+ssizeof(path) guard enforces, so a
// pathologically long directory can never silently construct a
// truncated path that coincidentally matches (spec.md §9, point 3).
func JoinPath(dir, base string) (string, error) {
	if dir == "" {
		if len(base) > PathMax {
			return "", ErrPathTooLong
		}
		return base, nil
	}
	total := len(dir) + 1 + len(base)
	if total > PathMax {
		return "", ErrPathTooLong
	}
	var b strings.Builder
	b.Grow(total)
	b.WriteString(dir)
	b.WriteByte('/')
	b.WriteString(base)
	return b.String(), nil
}
