package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/adtool/pkg/domain/model"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgCyan)
)

// printSummary writes "<label>: ERROR=n WARN=n INFO=n". Non-zero counts
// are colored when the output is a terminal.
func printSummary(w io.Writer, label string, s model.Summary) {
	fmt.Fprintf(w, "%s: %s %s %s\n", label,
		count(errorColor, "ERROR", s.Error),
		count(warnColor, "WARN", s.Warn),
		count(infoColor, "INFO", s.Info),
	)
}

func count(c *color.Color, name string, n int) string {
	text := fmt.Sprintf("%s=%d", name, n)
	if n == 0 {
		return text
	}
	return c.Sprint(text)
}
