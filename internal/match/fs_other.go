//go:build !linux

package match

import "golang.org/x/sys/unix"

const execOnlyFlag = unix.O_EXEC
