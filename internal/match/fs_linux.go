//go:build linux

package match

import "golang.org/x/sys/unix"

// Linux has no O_EXEC; O_PATH is the closest equivalent, exactly the
// substitution the C implementation makes when O_EXEC is undefined
// but O_PATH is available.
const execOnlyFlag = unix.O_PATH
