package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputFormat is the format of the rendered architecture document
type OutputFormat string

const (
	OutputFormatMarkdown OutputFormat = "md"
	OutputFormatDocx     OutputFormat = "docx"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatMarkdown, OutputFormatDocx:
		return true
	default:
		return false
	}
}

// Extension returns the file extension including the leading dot
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a format name. An empty name infers the format
// from the output path suffix: ".docx" selects docx, anything else markdown.
func ParseOutputFormat(s, outPath string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		if strings.ToLower(filepath.Ext(outPath)) == ".docx" {
			return OutputFormatDocx, nil
		}
		return OutputFormatMarkdown, nil
	}

	f := OutputFormat(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported format: %s", s)
	}
	return f, nil
}
