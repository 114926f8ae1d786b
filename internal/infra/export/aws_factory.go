// Where: internal/infra/export/aws_factory.go
// What: AWS client factory for the S3 and DynamoDB export sinks.
// Why: Encapsulate SDK configuration, including custom endpoints for S3-compatible stores.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/docker-prune-plan/internal/envutil"
)

const defaultAWSRegion = "us-east-1"

// S3API is the subset of the S3 client used for export.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DynamoDBAPI is the subset of the DynamoDB client used for export.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ClientFactory builds sink clients lazily, only for the schemes in use.
type ClientFactory interface {
	S3(ctx context.Context) (S3API, error)
	DynamoDB(ctx context.Context) (DynamoDBAPI, error)
}

// AWSSettings selects region and endpoint; empty values fall back to the
// SDK's environment and shared-config resolution.
type AWSSettings struct {
	Region   string
	Endpoint string
}

type awsClientFactory struct {
	settings AWSSettings
}

// NewAWSClientFactory returns a ClientFactory backed by aws-sdk-go-v2.
func NewAWSClientFactory(settings AWSSettings) ClientFactory {
	return awsClientFactory{settings: settings}
}

func (f awsClientFactory) S3(ctx context.Context) (S3API, error) {
	cfg, err := loadAWSConfig(ctx, f.settings.Region)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(options *s3.Options) {
		if f.settings.Endpoint != "" {
			options.BaseEndpoint = aws.String(f.settings.Endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

func (f awsClientFactory) DynamoDB(ctx context.Context) (DynamoDBAPI, error) {
	cfg, err := loadAWSConfig(ctx, f.settings.Region)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if f.settings.Endpoint != "" {
			options.BaseEndpoint = aws.String(f.settings.Endpoint)
		}
	}), nil
}

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = defaultAWSRegion
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	// PRUNE_PLAN_EXPORT_ACCESS_KEY/SECRET_KEY replace the default credential chain.
	accessKey := envutil.GetHostEnv("EXPORT_ACCESS_KEY")
	secretKey := envutil.GetHostEnv("EXPORT_SECRET_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
