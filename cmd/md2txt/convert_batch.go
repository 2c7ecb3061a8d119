package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/fileutil"
	"github.com/alnah/go-md2txt/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrWriteLog    = errors.New("failed to write removed-content log")
	ErrWriteReport = errors.New("failed to write report")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2txt.Input) (*md2txt.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2txt.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	workers       int       // Parallel conversions
	writeLog      bool      // Write the removed-content log next to each output
	removedSuffix string    // Suffix of the removed-content log
	record        bool      // Keep removed fragments (log or report)
	stdout        io.Writer // Destination for stdoutPath
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	RemovedPath string // Empty when no log was written
	Result      *md2txt.ConvertResult
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently with a shared converter.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := max(params.workers, 1)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}

	convResult, err := conv.Convert(ctx, md2txt.Input{
		Content:  content,
		Filename: f.InputPath,
		Record:   params.record,
	})
	if err != nil {
		if errors.Is(err, md2txt.ErrDecode) {
			err = fmt.Errorf("%w%s", err, hints.ForDecode(content))
		}
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Result = convResult

	if f.OutputPath == stdoutPath {
		if _, err := io.WriteString(params.stdout, convResult.Text+"\n"); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFile(f.OutputPath, []byte(convResult.Text)); err != nil {
		result.Err = fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	// An empty log would only contain its header.
	if params.writeLog && convResult.Removed.Len() > 0 {
		logPath := fileutil.RemovedLogPath(f.OutputPath, params.removedSuffix)
		if err := fileutil.WriteFile(logPath, []byte(convResult.Removed.Render())); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteLog, err)
			result.Duration = time.Since(start)
			return result
		}
		result.RemovedPath = logPath
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printOptions selects what printResultsWithWriter shows.
type printOptions struct {
	quiet   bool
	verbose bool
	debug   bool
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Diagnostics go to Stderr so that "-o -" keeps Stdout clean.
func printResultsWithWriter(results []ConversionResult, opts printOptions, env *Environment) int {
	summary := countResults(results)
	residualHint := false

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if opts.debug {
			printStepStats(env.Stderr, r)
		}

		if !opts.quiet {
			for _, w := range r.Result.Warnings {
				fmt.Fprintf(env.Stderr, "warning: %s: %s%s\n", r.InputPath, w, hints.ForUnclosedBlock())
			}
			for _, f := range r.Result.Residual {
				fmt.Fprintf(env.Stderr, "residual: %s: %s\n", r.InputPath, f)
				residualHint = true
			}
		}

		if opts.quiet || r.OutputPath == stdoutPath {
			continue
		}

		if opts.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.RemovedPath != "" {
			fmt.Fprintf(env.Stdout, "Removed content saved to %s\n", r.RemovedPath)
		}
	}

	if residualHint {
		fmt.Fprintf(env.Stderr, "residual markdown found%s\n", hints.ForResidual())
	}

	if !opts.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// printStepStats prints the length of the document around each step.
func printStepStats(w io.Writer, r ConversionResult) {
	res := r.Result
	fmt.Fprintf(w, "%s: starting conversion - original length: %d\n", r.InputPath, res.OriginalLength)
	for i, s := range res.Stats {
		fmt.Fprintf(w, "Step %d - %s: %d → %d (diff: %d)\n", i+1, s.Name, s.Before, s.After, s.Diff())
	}
	fmt.Fprintf(w, "Final length: %d (total reduction: %d)\n", res.FinalLength(), res.TotalReduction())
}
