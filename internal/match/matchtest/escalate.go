package matchtest

import "context"

// Escalator is a fake match.Escalator. ErrOverride, if set, is
// returned instead of running fn, simulating an elevation failure.
type Escalator struct {
	ErrOverride error
	Reasons     []string
}

func (e *Escalator) WithPrivileges(_ context.Context, reason string, fn func() error) error {
	e.Reasons = append(e.Reasons, reason)
	if e.ErrOverride != nil {
		return e.ErrOverride
	}
	return fn()
}
