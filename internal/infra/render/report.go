// Where: internal/infra/render/report.go
// What: Serializable plan report shared by the JSON, YAML and template renderers.
// Why: Keep the machine-readable field names in one place.
package render

import (
	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/humanize"
)

// Item is one candidate in machine-readable form.
type Item struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	HumanSize   string `json:"human_size"`
	Description string `json:"description"`
}

// Report is the machine-readable plan of one command.
type Report struct {
	Command              string `json:"command"`
	Items                []Item `json:"items"`
	PlanReclaimableBytes int64  `json:"plan_reclaimable_bytes"`
}

// NewReport converts a plan. Items is never nil so JSON renders [] for an empty plan.
func NewReport(command string, p plan.Plan) Report {
	candidates := p.Items()
	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, Item{
			Type:        c.Kind.String(),
			ID:          c.ID,
			Name:        c.Name,
			Size:        c.Size,
			HumanSize:   humanize.HumanSize(c.Size),
			Description: c.Description,
		})
	}
	return Report{
		Command:              command,
		Items:                items,
		PlanReclaimableBytes: p.Reclaimable(),
	}
}
