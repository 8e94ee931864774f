package match

// interceptOK implements the §4.7 "Intercept-setid guard": only
// applies when intercepted is true, and only rejects when the policy
// disallows setid targets and the file actually has one of the setid
// bits set. Rationale preserved from the original: an intercepted
// child process must not be able to launder privilege through a
// setid binary the parent rule never explicitly named.
func interceptOK(intercepted bool, allowSetid bool, st FileStat) bool {
	if !intercepted {
		return true
	}
	if !allowSetid && st.IsSetid() {
		return false
	}
	return true
}
