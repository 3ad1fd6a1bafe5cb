package report

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/service/render"
)

// Marshal encodes the report as indented JSON. HTML characters are kept
// as is so that messages stay readable.
func Marshal(r *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the report to w
func Write(w io.Writer, r *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return goerr.Wrap(err, "failed to encode report")
	}
	return nil
}

// GapsMarkdown renders the ERROR and WARN issues as a markdown table
func GapsMarkdown(issues []model.Issue) string {
	gaps := model.GapIssues(issues)
	if len(gaps) == 0 {
		return "# Gaps / TODO\n\nNo gaps found.\n"
	}

	var b strings.Builder
	b.WriteString("# Gaps / TODO\n\n")
	b.WriteString("| Severity | Code | Location | Message |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, g := range gaps {
		b.WriteString("| " + g.Severity.String() + " | " + g.Code.String() + " | " +
			render.EscapeCell(g.Location) + " | " + render.EscapeCell(g.Message) + " |\n")
	}
	return b.String()
}
