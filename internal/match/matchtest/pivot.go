package matchtest

import "github.com/privguard/privguard/internal/match"

// Pivot is a fake match.RootPivot that never touches the real
// filesystem. PivotErr, when set, makes every Pivot call fail.
type Pivot struct {
	PivotErr      error
	Pivots        []string // every newRoot passed to Pivot, in order
	Restores      int
	RestoreErr    error
	preRootExists map[string]bool
}

func NewPivot() *Pivot { return &Pivot{} }

type fakeRootRef struct{ exists map[string]bool }

func (r fakeRootRef) Exists(relPath string) bool { return r.exists[relPath] }

// WithPreRoot lets a test control what /dev/fd/N probes against the
// pre-pivot root resolve to.
func (p *Pivot) WithPreRoot(exists map[string]bool) {
	p.preRootExists = exists
}

func (p *Pivot) Pivot(newRoot string) (func() error, match.RootRef, error) {
	if p.PivotErr != nil {
		return nil, nil, p.PivotErr
	}
	p.Pivots = append(p.Pivots, newRoot)
	ref := fakeRootRef{exists: p.preRootExists}
	restore := func() error {
		p.Restores++
		return p.RestoreErr
	}
	return restore, ref, nil
}
