package render

import (
	"fmt"
	"io"
	"text/template"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

// Output modes.
const (
	ModeTable    = "table"
	ModeJSON     = "json"
	ModeYAML     = "yaml"
	ModeTemplate = "template"
)

// Renderer writes a plan in the selected mode. It implements ports.PlanRenderer.
type Renderer struct {
	Mode     string
	Table    TableOptions
	Template *template.Template
}

var _ ports.PlanRenderer = Renderer{}

// NewRenderer selects the output mode. A non-empty format takes precedence
// over mode and is compiled as a per-row template.
func NewRenderer(mode, format string, table TableOptions) (Renderer, error) {
	if format != "" {
		tmpl, err := ParseRowTemplate(format)
		if err != nil {
			return Renderer{}, err
		}
		return Renderer{Mode: ModeTemplate, Template: tmpl}, nil
	}
	switch mode {
	case "", ModeTable:
		return Renderer{Mode: ModeTable, Table: table}, nil
	case ModeJSON, ModeYAML:
		return Renderer{Mode: mode}, nil
	}
	return Renderer{}, fmt.Errorf("unknown output mode %q", mode)
}

func (r Renderer) Render(w io.Writer, command string, p plan.Plan) error {
	switch r.Mode {
	case "", ModeTable:
		return Table(w, p, r.Table)
	case ModeJSON:
		return JSON(w, NewReport(command, p))
	case ModeYAML:
		return YAML(w, NewReport(command, p))
	case ModeTemplate:
		if r.Template == nil {
			return fmt.Errorf("template output without a template")
		}
		return Rows(w, r.Template, NewReport(command, p))
	}
	return fmt.Errorf("unknown output mode %q", r.Mode)
}
