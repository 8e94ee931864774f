// Package ruleset loads the minimal rule set this module's demo CLI
// evaluates commands against. It is deliberately not a full policy
// language: one TOML document, a flat list of rules, no includes, no
// aliases. Real deployments would hang a richer parser in front of
// internal/match; this is the harness that exercises it end to end.
package ruleset

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/privguard/privguard/internal/match"
)

// ErrEmptyRuleSet is returned when a loaded document defines no rules.
var ErrEmptyRuleSet = errors.New("ruleset: no rules defined")

// document is the raw TOML shape. Args is a pointer so go-toml/v2 can
// tell "field absent" (unrestricted) from "field present but empty"
// (no args allowed) — the distinction spec.md §4.2 requires.
type document struct {
	FdExec              string    `toml:"fdexec"`
	FastGlob            bool      `toml:"fast_glob"`
	InterceptAllowSetid bool      `toml:"intercept_allow_setid"`
	RunChroot           string    `toml:"runchroot"`
	Rules               []rawRule `toml:"rule"`
}

type rawRule struct {
	All        bool     `toml:"all"`
	Command    string   `toml:"command"`
	Args       *string  `toml:"args"`
	Chroot     string   `toml:"chroot"`
	DigestAlgo string   `toml:"digest_algorithm"`
	Digests    []string `toml:"digests"`
}

// RuleSet is a parsed policy document: package-wide defaults plus the
// ordered list of rules to try against a command, first match wins.
type RuleSet struct {
	Defaults match.Defaults
	Rules    []ParsedRule
}

// ParsedRule pairs a classified RuleCommand/RuleArgs with the fields
// CommandMatches needs that aren't part of either tagged variant.
type ParsedRule struct {
	Command match.RuleCommand
	Args    match.RuleArgs
	Chroot  string
	Digests match.DigestList
}

// Load reads and parses path into a RuleSet.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document into a RuleSet.
func Parse(data []byte) (*RuleSet, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ruleset: decode: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, ErrEmptyRuleSet
	}

	fdexec, err := match.ParseFdExecMode(doc.FdExec)
	if err != nil {
		return nil, fmt.Errorf("ruleset: %w", err)
	}

	rs := &RuleSet{
		Defaults: match.Defaults{
			FdExec:              fdexec,
			FastGlob:            doc.FastGlob,
			InterceptAllowSetid: doc.InterceptAllowSetid,
			RunChroot:           doc.RunChroot,
		},
	}

	for i, raw := range doc.Rules {
		parsed, err := parseRule(raw)
		if err != nil {
			return nil, fmt.Errorf("ruleset: rule %d: %w", i, err)
		}
		rs.Rules = append(rs.Rules, parsed)
	}
	return rs, nil
}

func parseRule(raw rawRule) (ParsedRule, error) {
	cmd := match.NewRuleCommand(raw.Command, raw.All)
	args := match.NewRuleArgs(derefOr(raw.Args, ""), raw.Args != nil)

	var digests match.DigestList
	for _, h := range raw.Digests {
		bytes, err := hex.DecodeString(h)
		if err != nil {
			return ParsedRule{}, fmt.Errorf("decode digest %q: %w", h, err)
		}
		algo := raw.DigestAlgo
		if algo == "" {
			algo = "sha256"
		}
		digests = append(digests, match.DigestSpec{Algorithm: algo, Expected: bytes})
	}

	return ParsedRule{
		Command: cmd,
		Args:    args,
		Chroot:  raw.Chroot,
		Digests: digests,
	}, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

