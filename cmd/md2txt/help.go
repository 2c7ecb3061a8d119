package main

import (
	"fmt"
	"io"
	"strings"

	md2txt "github.com/alnah/go-md2txt"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2txt <command> [flags] [args]")
	fmt.Fprintln(w, "       md2txt <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown or HTML files to plain text")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2txt help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2txt convert <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown or HTML files to plain text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  output   Output file or directory (same as --output)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (\"-\" = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Removed Content:")
	fmt.Fprintln(w, "  -s, --show-stripped       Write <output>_removed.txt with removed content")
	fmt.Fprintln(w, "      --suffix <s>          Log file suffix (default \"_removed\")")
	fmt.Fprintln(w, "      --report <path>       Write a YAML conversion report")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --placeholder <s>     Code block replacement (default \"[CODE BLOCK]\")")
	fmt.Fprintln(w, "      --disable <steps>     Skip steps, comma-separated")
	fmt.Fprintln(w, "      --check               Report Markdown left in the output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "  -d, --debug               Show per-step length statistics")
}

// printStepsUsage prints the step names accepted by --disable.
func printStepsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2txt help steps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion steps, in execution order (names are case-insensitive):")
	for i, name := range md2txt.StepNames() {
		fmt.Fprintf(w, "  %2d  %s\n", i+1, name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example: md2txt notes.md --disable "+quoteIfSpaced(md2txt.StepNames()[0]))
}

// quoteIfSpaced quotes s for a shell when it contains spaces.
func quoteIfSpaced(s string) string {
	if strings.Contains(s, " ") {
		return "\"" + s + "\""
	}
	return s
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "steps":
		printStepsUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2txt version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2txt help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command. 'md2txt help steps' lists the conversion steps.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
