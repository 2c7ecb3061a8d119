package main

import (
	"errors"
	"fmt"
	"os"

	md2txt "github.com/alnah/go-md2txt"
	"github.com/alnah/go-md2txt/internal/config"
	"github.com/alnah/go-md2txt/internal/fileutil"
)

// Exit codes for md2txt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitDecode  = 4 // Input is not UTF-8 text or HTML could not be converted
)

// ErrConversionFailed marks a batch in which at least one file failed.
var ErrConversionFailed = errors.New("conversion failed")

// conversionError reports failed files of a batch. It unwraps to
// ErrConversionFailed and to the first failure, so exitCodeFor classifies
// the batch by its first failing file.
type conversionError struct {
	failed int
	total  int
	first  error
}

func (e *conversionError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *conversionError) Unwrap() []error {
	return []error{ErrConversionFailed, e.first}
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Decode errors (exit 4)
	if errors.Is(err, md2txt.ErrDecode) ||
		errors.Is(err, md2txt.ErrHTMLConversion) {
		return ExitDecode
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrWriteLog) ||
		errors.Is(err, ErrWriteReport) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, fileutil.ErrSuffixEmpty) ||
		errors.Is(err, fileutil.ErrSuffixPathTraversal) ||
		errors.Is(err, md2txt.ErrUnknownStep) ||
		errors.Is(err, md2txt.ErrInvalidInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, ErrDuplicateOutput) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
