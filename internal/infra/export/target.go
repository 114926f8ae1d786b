// Where: internal/infra/export/target.go
// What: Export target parsing.
// Why: Accept s3://bucket/prefix and dynamodb://table from flags and config alike.
package export

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme names a supported sink.
type Scheme string

const (
	SchemeS3       Scheme = "s3"
	SchemeDynamoDB Scheme = "dynamodb"
)

// Target is one parsed export destination.
type Target struct {
	Scheme Scheme
	// Resource is the bucket or table name.
	Resource string
	// Prefix is the S3 key prefix; empty for DynamoDB.
	Prefix string
}

func (t Target) String() string {
	if t.Prefix == "" {
		return fmt.Sprintf("%s://%s", t.Scheme, t.Resource)
	}
	return fmt.Sprintf("%s://%s/%s", t.Scheme, t.Resource, t.Prefix)
}

// ParseTarget parses an export URL.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Target{}, fmt.Errorf("parse export target %q: %w", raw, err)
	}
	if u.Host == "" {
		return Target{}, fmt.Errorf("export target %q: missing bucket or table", raw)
	}
	prefix := strings.Trim(u.Path, "/")

	switch Scheme(strings.ToLower(u.Scheme)) {
	case SchemeS3:
		return Target{Scheme: SchemeS3, Resource: u.Host, Prefix: prefix}, nil
	case SchemeDynamoDB:
		if prefix != "" {
			return Target{}, fmt.Errorf("export target %q: dynamodb targets take no path", raw)
		}
		return Target{Scheme: SchemeDynamoDB, Resource: u.Host}, nil
	}
	return Target{}, fmt.Errorf("export target %q: unsupported scheme %q (expected s3 or dynamodb)", raw, u.Scheme)
}

// ParseTargets parses every raw target, stopping at the first invalid one.
func ParseTargets(raw []string) ([]Target, error) {
	targets := make([]Target, 0, len(raw))
	for _, value := range raw {
		target, err := ParseTarget(value)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}
