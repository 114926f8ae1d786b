package planner

import (
	"context"
	"strings"
	"time"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

const (
	reasonDanglingImage = "Dangling image"
	reasonUnusedImage   = "Unused image (no containers)"
	untaggedName        = "<none>"
	// createdLayout renders UTC timestamps with an explicit +00:00 offset.
	createdLayout = "2006-01-02T15:04:05+00:00"
)

func (p *Planner) planImages(ctx context.Context, snap *Snapshot, includeAll bool) (plan.Plan, error) {
	var out plan.Plan

	// Dangling images carry no tag, so no container can reference them by
	// name; the usage index is only needed for the all-images mode.
	var index plan.UsageIndex
	if includeAll {
		var err error
		index, err = snap.UsageIndex(ctx)
		if err != nil {
			return out, err
		}
	}

	images, err := p.engine.ListImages(ctx, ports.ImageQuery{
		All:          true,
		DanglingOnly: !includeAll,
	})
	if err != nil {
		return out, err
	}

	reason := reasonDanglingImage
	if includeAll {
		reason = reasonUnusedImage
	}
	for _, img := range images {
		if includeAll && index.ImageInUse(img.ID) {
			continue
		}

		name := untaggedName
		if len(img.RepoTags) > 0 {
			name = strings.Join(img.RepoTags, ", ")
		}
		description := reason
		if img.Created > 0 {
			description += "; Created: " + time.Unix(img.Created, 0).UTC().Format(createdLayout)
		}

		out.Add(plan.Candidate{
			Kind:        plan.KindImage,
			ID:          plan.ShortID(img.ID),
			Name:        name,
			Size:        img.Size,
			Description: description,
		})
	}
	return out, nil
}
