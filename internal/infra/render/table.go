// Where: internal/infra/render/table.go
// What: Plain-text table rendering of a plan.
// Why: Default human output: padded columns and the reclaimable total.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/humanize"
)

const columnGap = "  "

// TableOptions selects optional table columns.
type TableOptions struct {
	// HideName drops the NAME column (system plans without --name).
	HideName bool
}

// Table writes the header, one row per candidate and the total line.
// Every cell, the last one included, is left-justified to its column width.
func Table(w io.Writer, p plan.Plan, opts TableOptions) error {
	headers := []string{"TYPE", "ID", "NAME", "SIZE", "INFO"}
	cells := func(c plan.Candidate) []string {
		return []string{c.Kind.String(), c.ID, c.Name, humanize.HumanSize(c.Size), c.Description}
	}
	if opts.HideName {
		headers = []string{"TYPE", "ID", "SIZE", "INFO"}
		cells = func(c plan.Candidate) []string {
			return []string{c.Kind.String(), c.ID, humanize.HumanSize(c.Size), c.Description}
		}
	}

	rows := [][]string{headers}
	for _, c := range p.Items() {
		rows = append(rows, cells(c))
	}

	widths := make([]int, len(headers))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(columnGap)
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nPlan Reclaimable Space: %s\n", humanize.HumanSize(p.Reclaimable()))

	_, err := io.WriteString(w, b.String())
	return err
}
