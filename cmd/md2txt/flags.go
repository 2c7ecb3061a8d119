package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds flags controlling what gets written besides the text.
type outputFlags struct {
	showStripped bool   // Write the removed-content log
	suffix       string // Removed-content log suffix
	report       string // YAML report path
}

// pipelineFlags holds conversion step flags.
type pipelineFlags struct {
	placeholder string
	disable     []string
	check       bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	debug    bool
	outputs  outputFlags
	pipeline pipelineFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addOutputFlags adds removed-content log and report flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVarP(&f.showStripped, "show-stripped", "s", false, "write removed content next to each output")
	fs.StringVar(&f.suffix, "suffix", "", "removed-content log suffix (default \"_removed\")")
	fs.StringVar(&f.report, "report", "", "write a YAML conversion report to this file")
}

// addPipelineFlags adds conversion step flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.StringVar(&f.placeholder, "placeholder", "", "text replacing code blocks (default \"[CODE BLOCK]\")")
	fs.StringSliceVar(&f.disable, "disable", nil, "steps to skip, comma-separated")
	fs.BoolVar(&f.check, "check", false, "report Markdown left in the output")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to w when -h is given or parsing fails.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "print per-step length statistics")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.outputs)
	addPipelineFlags(fs, &f.pipeline)

	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
