// Where: internal/domain/plan/candidate.go
// What: Prune candidates and the plan aggregate.
// Why: Keep the reclaimable total tied to exactly the candidates that were added.
package plan

// Candidate is one resource the planner believes a prune would remove.
type Candidate struct {
	Kind        Kind
	ID          string
	Name        string
	Size        int64
	Description string
}

// Plan is an ordered list of candidates with their summed size.
// The zero value is an empty plan.
type Plan struct {
	items       []Candidate
	reclaimable int64
}

// Add appends a candidate and adds its size to the total.
func (p *Plan) Add(c Candidate) {
	p.items = append(p.items, c)
	p.reclaimable += c.Size
}

// AddUncounted appends a candidate whose size must not enter the total,
// e.g. a volume for which the engine reported no usage data.
func (p *Plan) AddUncounted(c Candidate) {
	p.items = append(p.items, c)
}

// Merge appends every candidate of other, preserving its order, and adds
// other's total as reported rather than re-deriving it.
func (p *Plan) Merge(other Plan) {
	p.items = append(p.items, other.items...)
	p.reclaimable += other.reclaimable
}

// Items returns the candidates in insertion order. The slice is never nil.
func (p Plan) Items() []Candidate {
	out := make([]Candidate, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of candidates.
func (p Plan) Len() int {
	return len(p.items)
}

// Reclaimable returns the total bytes a prune would recover.
func (p Plan) Reclaimable() int64 {
	return p.reclaimable
}

// ByKind returns per-kind candidate counts and sizes.
func (p Plan) ByKind() map[Kind]KindTotal {
	totals := map[Kind]KindTotal{}
	for _, c := range p.items {
		t := totals[c.Kind]
		t.Count++
		t.Size += c.Size
		totals[c.Kind] = t
	}
	return totals
}

// KindTotal summarizes the candidates of one kind.
type KindTotal struct {
	Count int
	Size  int64
}
