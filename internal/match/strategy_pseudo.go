package match

// matchPseudo implements the pseudo-command strategy (spec.md §4.1 item
// 3, §GLOSSARY "Pseudo-command"): rule.Raw must be one of the
// recognized pseudo-commands ("list", "sudoedit"), the user's literal
// command must equal it verbatim, and the arguments must agree. A
// pseudo-command never opens a file or publishes a descriptor — there
// is no backing file to stat.
func matchPseudo(c *Context, rule RuleCommand, args RuleArgs) bool {
	if !IsRecognizedPseudo(rule.Raw) {
		return false
	}
	if c.User.Literal != rule.Raw {
		return false
	}
	return matchArgs(c, args, rule.Raw == string(PseudoSudoedit), c.User.Args)
}
