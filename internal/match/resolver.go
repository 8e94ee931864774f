package match

// PathResolver re-locates the user's command after a rule-specific
// chroot pivot (spec.md §4.1 "reset_cmnd"). Outside of this package
// the equivalent lookup also searches $PATH; within match, re-stat the
// already-known path inside the freshly pivoted namespace.
type PathResolver interface {
	Resolve(fs FileSystem, prior UserCommand) (UserCommand, Status)
}

type statPathResolver struct{}

// NewPathResolver returns the default resolver, which re-stats the
// prior command's path relative to the pivoted root rather than
// performing a fresh $PATH search.
func NewPathResolver() PathResolver { return statPathResolver{} }

func (statPathResolver) Resolve(fs FileSystem, prior UserCommand) (UserCommand, Status) {
	if prior.Path == "" {
		return prior, StatusNotResolved
	}
	st, err := fs.Stat(prior.Path)
	if err != nil {
		next := prior
		next.Stat = nil
		return next, StatusNotFound
	}
	next := prior
	next.Stat = &st
	return next, StatusFound
}
