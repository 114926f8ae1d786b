// Where: internal/infra/export/exporter.go
// What: Plan report export to S3 objects and DynamoDB items.
// Why: Fleet auditing collects plans from many hosts in one place.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/poruru/docker-prune-plan/internal/infra/render"
	"github.com/poruru/docker-prune-plan/internal/meta"
	"go.uber.org/zap"
)

// Envelope is the exported document: the plan report plus run metadata.
type Envelope struct {
	RunID       string        `json:"run_id"`
	Hostname    string        `json:"hostname"`
	GeneratedAt time.Time     `json:"generated_at"`
	Report      render.Report `json:"report"`
}

// Result describes one completed export.
type Result struct {
	Target   Target
	Location string
}

// Exporter writes plan reports to external sinks. It never talks to the engine.
type Exporter struct {
	factory  ClientFactory
	logger   *zap.Logger
	now      func() time.Time
	newRunID func() string
	hostname func() (string, error)
}

// NewExporter returns an Exporter using factory for sink clients.
func NewExporter(factory ClientFactory, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		factory:  factory,
		logger:   logger,
		now:      time.Now,
		newRunID: uuid.NewString,
		hostname: os.Hostname,
	}
}

// Export writes report to every target under one run id. Targets are
// attempted independently; the returned error joins every failure.
func (e *Exporter) Export(ctx context.Context, targets []Target, report render.Report) ([]Result, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	hostname, err := e.hostname()
	if err != nil {
		hostname = "unknown"
	}
	envelope := Envelope{
		RunID:       e.newRunID(),
		Hostname:    hostname,
		GeneratedAt: e.now().UTC(),
		Report:      report,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode export document: %w", err)
	}

	var (
		results []Result
		errs    []error
	)
	for _, target := range targets {
		var location string
		switch target.Scheme {
		case SchemeS3:
			location, err = e.putObject(ctx, target, envelope, body)
		case SchemeDynamoDB:
			location, err = e.putItem(ctx, target, envelope, body)
		default:
			err = fmt.Errorf("unsupported scheme %q", target.Scheme)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("export to %s: %w", target, err))
			continue
		}
		e.logger.Debug("exported plan",
			zap.String("target", target.String()),
			zap.String("location", location),
			zap.String("run_id", envelope.RunID),
		)
		results = append(results, Result{Target: target, Location: location})
	}
	return results, errors.Join(errs...)
}

// ObjectKey returns <prefix>/<hostname>/<command>/<timestamp>-<run id>.json.
func ObjectKey(prefix string, envelope Envelope) string {
	if prefix == "" {
		prefix = meta.ExportKeyPrefix
	}
	name := envelope.GeneratedAt.Format("20060102T150405Z") + "-" + envelope.RunID + ".json"
	return path.Join(prefix, envelope.Hostname, envelope.Report.Command, name)
}

func (e *Exporter) putObject(ctx context.Context, target Target, envelope Envelope, body []byte) (string, error) {
	client, err := e.factory.S3(ctx)
	if err != nil {
		return "", err
	}
	key := ObjectKey(target.Prefix, envelope)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(target.Resource),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", target.Resource, key), nil
}

func (e *Exporter) putItem(ctx context.Context, target Target, envelope Envelope, body []byte) (string, error) {
	client, err := e.factory.DynamoDB(ctx)
	if err != nil {
		return "", err
	}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(target.Resource),
		Item:      dynamoItem(envelope, body),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("dynamodb://%s/%s", target.Resource, envelope.RunID), nil
}

// dynamoItem keys the item by run_id and keeps per-kind totals queryable
// next to the full document.
func dynamoItem(envelope Envelope, body []byte) map[string]types.AttributeValue {
	kinds := map[string]types.AttributeValue{}
	totals := map[string]int64{}
	for _, item := range envelope.Report.Items {
		totals[item.Type] += item.Size
	}
	for kind, size := range totals {
		kinds[kind] = &types.AttributeValueMemberN{Value: strconv.FormatInt(size, 10)}
	}

	return map[string]types.AttributeValue{
		"run_id":                 &types.AttributeValueMemberS{Value: envelope.RunID},
		"hostname":               &types.AttributeValueMemberS{Value: envelope.Hostname},
		"command":                &types.AttributeValueMemberS{Value: envelope.Report.Command},
		"generated_at":           &types.AttributeValueMemberS{Value: envelope.GeneratedAt.Format(time.RFC3339)},
		"plan_reclaimable_bytes": &types.AttributeValueMemberN{Value: strconv.FormatInt(envelope.Report.PlanReclaimableBytes, 10)},
		"item_count":             &types.AttributeValueMemberN{Value: strconv.Itoa(len(envelope.Report.Items))},
		"kinds":                  &types.AttributeValueMemberM{Value: kinds},
		"document":               &types.AttributeValueMemberS{Value: string(body)},
	}
}
