package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/docker-prune-plan/internal/humanize"
	"sigs.k8s.io/yaml"
)

// JSON writes the report with two-space indentation. HTML characters in
// names (e.g. <none>) are written verbatim.
func JSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// YAML writes the report using the same field names as JSON.
func YAML(w io.Writer, report Report) error {
	payload, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	_, err = w.Write(payload)
	return err
}

// ParseRowTemplate compiles a --format template executed once per item.
// Sprig functions are available, plus humanSize for raw byte counts.
func ParseRowTemplate(format string) (*template.Template, error) {
	funcs := sprig.TxtFuncMap()
	funcs["humanSize"] = humanize.HumanSize
	tmpl, err := template.New("row").Option("missingkey=error").Funcs(funcs).Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parse format: %w", err)
	}
	return tmpl, nil
}

// Rows renders each item with tmpl, one line per item.
func Rows(w io.Writer, tmpl *template.Template, report Report) error {
	var b bytes.Buffer
	for _, item := range report.Items {
		b.Reset()
		if err := tmpl.Execute(&b, item); err != nil {
			return fmt.Errorf("render %s %s: %w", item.Type, item.ID, err)
		}
		line := strings.TrimRight(b.String(), "\n")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
