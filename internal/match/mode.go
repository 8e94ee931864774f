package match

// Mode selects between filesystem-backed identity matching and the
// filesystem-independent name matching used by offline policy
// verification and fuzzing (spec.md §4.5, §6 "Build-mode toggle").
type Mode int

const (
	// ModeInode resolves identity by (device, inode) comparison and
	// consults the real filesystem for stat, digest, and open
	// operations. This is the mode a live privilege-escalation
	// decision runs in.
	ModeInode Mode = iota

	// ModeName skips all stat/inode/intercept logic and reduces every
	// strategy to string/pattern comparison against user_cmnd. Used
	// by policy verification tools and fuzzers that cannot touch the
	// real filesystem. Digest verification, the opener, and
	// set_cmnd_fd still run for observability; they just never
	// consult stat.
	ModeName
)

func (m Mode) String() string {
	switch m {
	case ModeInode:
		return "inode"
	case ModeName:
		return "name"
	default:
		return "unknown"
	}
}
