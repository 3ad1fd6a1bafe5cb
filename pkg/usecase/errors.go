package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for unrecoverable pipeline failures
var (
	ErrSpecDirNotFound   = goerr.New("spec directory not found")
	ErrUnsupportedFormat = goerr.New("unsupported output format")
	ErrTemplateLoad      = goerr.New("failed to load template")
	ErrGlossaryLoad      = goerr.New("failed to load glossary")
	ErrWriteOutput       = goerr.New("failed to write output")
	ErrRenderDocument    = goerr.New("failed to render document")
	ErrMissingOutputPath = goerr.New("output path is required")
	ErrNoSpecStore       = goerr.New("spec store is not configured")
)

// Context keys for error values
const (
	FormatKey = "format"
)
