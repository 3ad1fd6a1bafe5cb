package render

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
)

//go:embed templates/architecture.md.tmpl
var defaultTemplateText string

var defaultTemplate = template.Must(
	template.New("architecture").Funcs(FuncMap()).Parse(defaultTemplateText),
)

// ErrParseTemplate is returned when a custom template does not parse
var ErrParseTemplate = goerr.New("failed to parse template")

// Renderer renders a DocumentView through a text/template. Custom template
// text binds to the same DocumentView fields and helper functions as the
// built-in template.
type Renderer struct {
	tmpl *template.Template
}

// Default returns a renderer using the built-in template
func Default() *Renderer {
	return &Renderer{tmpl: defaultTemplate}
}

// New parses text as a document template
func New(text string) (*Renderer, error) {
	tmpl, err := template.New("custom").Funcs(FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, goerr.Wrap(ErrParseTemplate, err.Error())
	}
	return &Renderer{tmpl: tmpl}, nil
}

// DefaultTemplateText returns the source of the built-in template
func DefaultTemplateText() string {
	return defaultTemplateText
}

// Render executes the template against view
func (r *Renderer) Render(w io.Writer, view *model.DocumentView) error {
	if err := r.tmpl.Execute(w, view); err != nil {
		return goerr.Wrap(err, "failed to execute template",
			goerr.V("template", r.tmpl.Name()))
	}
	return nil
}
