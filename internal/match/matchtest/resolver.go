package matchtest

import "github.com/privguard/privguard/internal/match"

// Resolver is a fake match.PathResolver returning a fixed answer
// regardless of the prior command, so reset_cmnd tests can assert on
// exactly what the dispatcher does with the result.
type Resolver struct {
	Next   match.UserCommand
	Status match.Status
	Calls  int
}

func (r *Resolver) Resolve(_ match.FileSystem, _ match.UserCommand) (match.UserCommand, match.Status) {
	r.Calls++
	return r.Next, r.Status
}
