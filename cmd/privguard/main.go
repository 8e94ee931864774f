// Package main is the entry point for privguard, a small harness that
// evaluates one command against a TOML rule set using internal/match.
// It exists to exercise the core end to end; the TOML format it reads
// is a demonstration harness, not a policy language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/privguard/privguard/internal/escalate"
	"github.com/privguard/privguard/internal/logging"
	"github.com/privguard/privguard/internal/match"
	"github.com/privguard/privguard/internal/redaction"
	"github.com/privguard/privguard/internal/ruleset"
	"github.com/privguard/privguard/internal/terminal"
)

var (
	rulesPath        = flag.String("rules", "", "path to the TOML rule set")
	commandPath      = flag.String("command", "", "path to the candidate command as resolved by the caller")
	commandArgs      = flag.String("args", "", "the command's arguments, as a single string")
	requestedChroot  = flag.String("chroot", "", "a chroot the user explicitly requested, if any")
	nameMode         = flag.Bool("name-mode", false, "run in filesystem-independent name-match mode instead of inode mode")
	intercepted      = flag.Bool("intercept", false, "evaluate as an intercepted child-process exec decision")
	envFile          = flag.String("env-file", "", "path to an environment file to load before evaluating")
	runID            = flag.String("run-id", "", "unique identifier for this evaluation (auto-generates a ULID if not provided)")
	logLevel         = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	forceInteractive = flag.Bool("interactive", false, "force interactive-style output")
	forceQuiet       = flag.Bool("quiet", false, "force non-interactive output")
)

var errUsage = errors.New("privguard: -rules and -command are required")

func main() {
	flag.Parse()

	if *runID == "" {
		*runID = logging.GenerateRunID()
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "privguard: failed to load env file %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	}

	logger, err := newLogger(*runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "privguard: %v\n", err)
		os.Exit(1)
	}

	decision, err := run(logger)
	if err != nil {
		logger.Error("evaluation failed", "error", err, "run_id", *runID)
		fmt.Fprintf(os.Stderr, "privguard: %v\n", err)
		os.Exit(2)
	}

	reportDecision(decision)
	if !decision.Matched {
		os.Exit(1)
	}
}

// newLogger builds a layered handler stack: an
// interactive handler for TTY sessions, a conditional text handler for
// everything else, both wrapped in redaction before reaching stderr.
func newLogger(runID string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}

	capabilities := terminal.NewCapabilities(terminal.Options{
		DetectorOptions: terminal.DetectorOptions{
			ForceInteractive:    *forceInteractive,
			ForceNonInteractive: *forceQuiet,
		},
	})

	var handlers []slog.Handler

	if capabilities.IsInteractive() {
		interactive, err := logging.NewInteractiveHandler(logging.InteractiveHandlerOptions{
			Level:        level,
			Writer:       os.Stderr,
			Capabilities: capabilities,
			Formatter:    logging.NewDefaultMessageFormatter(),
			LineTracker:  logging.NewDefaultLogLineTracker(),
		})
		if err != nil {
			return nil, fmt.Errorf("building interactive handler: %w", err)
		}
		handlers = append(handlers, interactive)
	}

	conditional, err := logging.NewConditionalTextHandler(logging.ConditionalTextHandlerOptions{
		TextHandlerOptions: &slog.HandlerOptions{Level: level},
		Writer:             os.Stderr,
		Capabilities:       capabilities,
	})
	if err != nil {
		return nil, fmt.Errorf("building text handler: %w", err)
	}
	handlers = append(handlers, conditional)

	multi := logging.NewMultiHandler(handlers...)

	return slog.New(redaction.NewRedactingHandler(multi, nil, nil)).With("run_id", runID), nil
}

// decisionResult is the CLI's own report shape; internal/match's
// public contract stays a single bool (spec.md §7) and this is just
// what the harness prints around it.
type decisionResult struct {
	Matched    bool
	RuleIndex  int
	SafeCmnd   string
	Intercept  bool
	StatusInfo match.CommandInfo
}

func run(logger *slog.Logger) (decisionResult, error) {
	if *rulesPath == "" || *commandPath == "" {
		return decisionResult{}, errUsage
	}

	rs, err := ruleset.Load(*rulesPath)
	if err != nil {
		return decisionResult{}, fmt.Errorf("loading rule set: %w", err)
	}

	mode := match.ModeInode
	if *nameMode {
		mode = match.ModeName
	}

	fs := match.NewOSFileSystem()
	user, err := resolveUserCommand(fs, mode)
	if err != nil {
		return decisionResult{}, fmt.Errorf("resolving command: %w", err)
	}

	c := match.NewContext(user, rs.Defaults, mode)
	c.Logger = logger
	c.Intercepted = *intercepted
	c.RequestedChroot = *requestedChroot
	if esc := escalate.New(logger); esc.Supported() {
		c.Escalate = esc
	}

	for i, rule := range rs.Rules {
		var info match.CommandInfo
		if match.CommandMatches(c, rule.Command, rule.Args, rule.Chroot, &info, rule.Digests) {
			return decisionResult{
				Matched:    true,
				RuleIndex:  i,
				SafeCmnd:   c.SafeCmnd(),
				Intercept:  info.Intercepted,
				StatusInfo: info,
			}, nil
		}
	}

	return decisionResult{Matched: false}, nil
}

func resolveUserCommand(fs match.FileSystem, mode match.Mode) (match.UserCommand, error) {
	path := *commandPath
	dir, base := splitPath(path)

	user := match.UserCommand{
		Literal: path,
		Path:    path,
		Dir:     dir,
		Base:    base,
		Args:    *commandArgs,
	}

	if mode == match.ModeName {
		return user, nil
	}

	st, err := fs.Stat(path)
	if err != nil {
		return match.UserCommand{}, err
	}
	user.Stat = &st
	return user, nil
}

func splitPath(path string) (dir, base string) {
	dir = match.DirName(path)
	base = match.Basename(path)
	return dir, base
}

func reportDecision(d decisionResult) {
	if !d.Matched {
		fmt.Println("DENY")
		return
	}
	fmt.Printf("ALLOW rule=%d safe_cmnd=%s intercepted=%t\n", d.RuleIndex, d.SafeCmnd, d.Intercept)
}
