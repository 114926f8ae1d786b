// Where: internal/usecase/planner/errors.go
// What: Error types for planning runs.
// Why: Let the CLI tell an unreachable engine apart from a failed query.
package planner

import "errors"

var (
	// ErrInvalidScope is returned for an unknown prune scope.
	ErrInvalidScope = errors.New("unknown prune scope")
	// ErrEngineUnavailable matches every ConnectionError via errors.Is.
	ErrEngineUnavailable = errors.New("docker engine unavailable")
)

// ConnectionError reports that the engine could not be reached before planning.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrEngineUnavailable
}

// IsConnectionError reports whether err (or anything it wraps) is a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}
