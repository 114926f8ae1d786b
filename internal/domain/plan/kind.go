// Where: internal/domain/plan/kind.go
// What: Resource kinds a prune plan can contain.
// Why: Keep the rendered type labels in one place.
package plan

// Kind identifies the Docker resource type of a candidate.
type Kind string

const (
	KindContainer  Kind = "Container"
	KindImage      Kind = "Image"
	KindVolume     Kind = "Volume"
	KindNetwork    Kind = "Network"
	KindBuildCache Kind = "BuildCache"
)

// Kinds lists every kind in system plan precedence order.
var Kinds = []Kind{KindContainer, KindNetwork, KindImage, KindVolume, KindBuildCache}

func (k Kind) String() string {
	return string(k)
}
