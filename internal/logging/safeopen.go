// Package logging provides structured logging support, including run
// identifiers for correlating a single evaluation's log lines.
package logging

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateRunID generates a new ULID for run identification.
func GenerateRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
