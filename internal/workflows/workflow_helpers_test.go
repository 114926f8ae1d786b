// Where: internal/workflows/workflow_helpers_test.go
// What: Test helpers and stub ports for workflow unit tests.
// Why: Keep workflow tests focused on orchestration behavior without external dependencies.
package workflows

import (
	"context"
	"fmt"
	"io"

	"github.com/poruru/docker-prune-plan/internal/domain/plan"
	"github.com/poruru/docker-prune-plan/internal/ports"
)

type testBlock struct {
	title string
	rows  []ports.KeyValue
}

type testUI struct {
	infos  []string
	warns  []string
	blocks []testBlock
}

func (u *testUI) Info(msg string) {
	u.infos = append(u.infos, msg)
}

func (u *testUI) Warn(msg string) {
	u.warns = append(u.warns, msg)
}

func (u *testUI) Block(_, title string, rows []ports.KeyValue) {
	u.blocks = append(u.blocks, testBlock{title: title, rows: rows})
}

type recordPlanner struct {
	requests []ports.PlanRequest
	result   ports.PlanResult
	err      error
}

func (r *recordPlanner) Plan(_ context.Context, req ports.PlanRequest) (ports.PlanResult, error) {
	r.requests = append(r.requests, req)
	return r.result, r.err
}

type recordRenderer struct {
	commands []string
	err      error
}

func (r *recordRenderer) Render(w io.Writer, command string, p plan.Plan) error {
	r.commands = append(r.commands, command)
	if r.err != nil {
		return r.err
	}
	_, err := fmt.Fprintf(w, "%s:%d\n", command, p.Len())
	return err
}

type recordSink struct {
	name      string
	runs      []ports.PlanRun
	locations []string
	err       error
}

func (s *recordSink) Name() string {
	return s.name
}

func (s *recordSink) Publish(_ context.Context, run ports.PlanRun) ([]string, error) {
	s.runs = append(s.runs, run)
	return s.locations, s.err
}
