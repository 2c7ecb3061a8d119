package md2txt

import (
	"errors"

	"github.com/alnah/go-md2txt/internal/pipeline"
	"github.com/alnah/go-md2txt/internal/residual"
	"github.com/alnah/go-md2txt/internal/source"
)

// Sentinel errors for library operations.
var (
	ErrInvalidInput   = errors.New("invalid conversion input")
	ErrDecode         = source.ErrDecode
	ErrHTMLConversion = source.ErrHTML
	ErrResidualCheck  = residual.ErrScan

	// Option validation errors.
	ErrUnknownStep = pipeline.ErrUnknownStep
)
