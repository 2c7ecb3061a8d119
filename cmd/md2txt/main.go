package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/hints"
	"github.com/alnah/go-md2txt/internal/source"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
// args includes the program name, like os.Args.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case cmd == "version":
		fmt.Fprintf(env.Stdout, "md2txt %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		return runHelp(rest, env)
	case cmd == "convert":
		return runConvertCmd(rest, env)
	case looksLikeInput(cmd) || (len(cmd) > 1 && cmd[0] == '-'):
		// Legacy form: md2txt <input> [output] [flags]
		return runConvertCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses convert flags, runs the batch and reports errors.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns the hint matching a top-level error, if any.
func hintFor(err error) string {
	if errors.Is(err, md2txt.ErrUnknownStep) {
		return hints.ForUnknownStep(md2txt.StepNames())
	}
	return ""
}

// commands lists the known subcommands.
var commands = []string{"convert", "version", "help"}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}

// looksLikeInput reports whether arg is an input path given without the
// convert command.
func looksLikeInput(arg string) bool {
	if isCommand(arg) {
		return false
	}
	return source.IsSupported(arg) || isDir(arg)
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// hasVerboseFlag scans raw arguments for -v/--verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
