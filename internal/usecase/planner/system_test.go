package planner

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/poruru/docker-prune-plan/internal/domain/engine"
	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

func systemEngine() *fakeEngine {
	return &fakeEngine{
		allContainers: []engine.ContainerRecord{
			{ID: "running", ImageID: "sha256:" + hexA, State: "running"},
		},
		stoppedContainers: []engine.ContainerRecord{
			{ID: hexB, Names: []string{"/old"}, Status: "Exited (1)", SizeRw: 10},
		},
		danglingImages: []engine.ImageRecord{{ID: "sha256:" + hexC, Size: 1000}},
		allImages: []engine.ImageRecord{
			{ID: "sha256:" + hexA, RepoTags: []string{"nginx:latest"}, Size: 500},
			{ID: "sha256:" + hexC, Size: 1000},
		},
		networks: []engine.NetworkRecord{{ID: "net1", Name: "appnet"}},
		details:  map[string]engine.NetworkDetail{"net1": {ID: "net1"}},
		usage: engine.DiskUsageReport{
			Volumes: []engine.VolumeUsage{
				{Name: anon, Usage: &engine.VolumeUsageData{Size: 20}},
				{Name: "named", Usage: &engine.VolumeUsageData{Size: 30}},
			},
			BuildCache: []engine.BuildCacheEntry{{ID: "cache1", Size: 4}},
		},
	}
}

func TestSystemPlanOrderWithoutVolumes(t *testing.T) {
	eng := systemEngine()
	p := runPlan(t, eng, ports.PlanRequest{Scope: ports.ScopeSystem})

	want := []plan.Kind{plan.KindContainer, plan.KindNetwork, plan.KindImage, plan.KindBuildCache}
	if got := kindsOf(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected kind order: got %v want %v", got, want)
	}
	if p.Reclaimable() != 1014 {
		t.Fatalf("unexpected total: %d", p.Reclaimable())
	}
	for _, query := range eng.containerQueries {
		if len(query.Statuses) == 0 {
			t.Fatalf("full container listing is not needed without -a or --volumes")
		}
	}
	if eng.usageCalls != 1 {
		t.Fatalf("expected one disk usage query, got %d", eng.usageCalls)
	}
}

func TestSystemPlanSharesQueries(t *testing.T) {
	eng := systemEngine()
	p := runPlan(t, eng, ports.PlanRequest{Scope: ports.ScopeSystem, All: true, Volumes: true})

	want := []plan.Kind{plan.KindContainer, plan.KindNetwork, plan.KindImage, plan.KindVolume, plan.KindBuildCache}
	if got := kindsOf(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected kind order: got %v want %v", got, want)
	}

	fullListings := 0
	for _, query := range eng.containerQueries {
		if query.All && len(query.Statuses) == 0 {
			fullListings++
		}
	}
	if fullListings != 1 {
		t.Fatalf("expected one full container listing, got %d", fullListings)
	}
	if eng.usageCalls != 1 {
		t.Fatalf("expected one disk usage query, got %d", eng.usageCalls)
	}

	for _, c := range p.Items() {
		if c.Kind == plan.KindVolume && (c.Name != anon || c.Description != "Unused volume (anonymous)") {
			t.Fatalf("system mode plans anonymous volumes only, got %+v", c)
		}
		if c.Kind == plan.KindImage && c.Name == "nginx:latest" {
			t.Fatalf("image used by a running container must be excluded")
		}
	}
	if p.Reclaimable() != 10+1000+20+4 {
		t.Fatalf("unexpected total: %d", p.Reclaimable())
	}
	totals := p.ByKind()
	if totals[plan.KindVolume].Size != 20 || totals[plan.KindImage].Count != 1 {
		t.Fatalf("unexpected per-kind totals: %+v", totals)
	}
}

func TestSystemPlanDiskUsageFailure(t *testing.T) {
	eng := systemEngine()
	eng.usageErr = errors.New("disk usage failed")
	result, err := New(eng).Plan(context.Background(), ports.PlanRequest{Scope: ports.ScopeSystem})
	if err == nil || IsConnectionError(err) {
		t.Fatalf("expected query error, got %v", err)
	}
	if result.Plan.Len() != 0 {
		t.Fatalf("expected no partial plan")
	}
}

func TestCrossCheckFigures(t *testing.T) {
	eng := &fakeEngine{
		stoppedContainers: []engine.ContainerRecord{{ID: hexA, SizeRw: 7}},
		usage: engine.DiskUsageReport{
			Containers: []engine.ContainerRecord{
				{ID: hexA, State: "exited", SizeRw: 7},
				{ID: hexB, State: "running", SizeRw: 100},
			},
			Images: []engine.ImageRecord{
				{ID: "i1", Size: 50, Containers: 0},
				{ID: "i2", Size: 60, Containers: 2},
			},
			Volumes: []engine.VolumeUsage{
				{Name: "v1", Usage: &engine.VolumeUsageData{Size: 5, RefCount: 0}},
				{Name: "v2", Usage: &engine.VolumeUsageData{Size: 9, RefCount: 1}},
				{Name: "v3"},
			},
			BuildCache: []engine.BuildCacheEntry{
				{ID: "b1", Size: 3},
				{ID: "b2", Size: 8, InUse: true},
			},
		},
		info: engine.Info{RootDir: "/var/lib/docker"},
	}
	probe := &fakeProbe{usage: plan.FilesystemUsage{Path: "/var/lib/docker", Total: 100, Used: 40, Free: 60}}

	result, err := New(eng, WithFilesystemProbe(probe)).Plan(context.Background(), ports.PlanRequest{
		Scope:      ports.ScopeContainer,
		CrossCheck: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	check := result.CrossCheck
	if check == nil {
		t.Fatalf("expected cross-check figures")
	}
	if check.Containers != 7 || check.Images != 50 || check.Volumes != 5 || check.BuildCache != 3 {
		t.Fatalf("unexpected figures: %+v", check)
	}
	if check.Planned != 7 || check.EngineTotal() != 65 || check.Delta() != -58 {
		t.Fatalf("unexpected comparison: planned=%d engine=%d delta=%d", check.Planned, check.EngineTotal(), check.Delta())
	}
	if check.RootFS == nil || check.RootFS.Free != 60 {
		t.Fatalf("expected root filesystem usage, got %+v", check.RootFS)
	}
	if len(probe.paths) != 1 || probe.paths[0] != "/var/lib/docker" {
		t.Fatalf("unexpected probe paths: %v", probe.paths)
	}
	if result.Plan.Reclaimable() != 7 {
		t.Fatalf("cross-check must not change the plan total")
	}
}

func TestCrossCheckFailureKeepsPlan(t *testing.T) {
	eng := &fakeEngine{
		stoppedContainers: []engine.ContainerRecord{{ID: hexA, SizeRw: 7}},
		usageErr:          errors.New("unsupported"),
	}
	probe := &fakeProbe{err: errors.New("no such path")}

	result, err := New(eng, WithFilesystemProbe(probe)).Plan(context.Background(), ports.PlanRequest{
		Scope:      ports.ScopeContainer,
		CrossCheck: true,
	})
	if err != nil {
		t.Fatalf("cross-check failure must not fail the plan: %v", err)
	}
	if result.CrossCheck != nil {
		t.Fatalf("expected no cross-check figures")
	}
	if result.Plan.Reclaimable() != 7 {
		t.Fatalf("unexpected total: %d", result.Plan.Reclaimable())
	}
}
