package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"livestock-health/internal/domain/dosing"
)

// Config de construcción. Sin Endpoint usa AWS; con Endpoint, un S3
// compatible (MinIO).
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	PathStyle bool
	Prefix    string // default "progress/"

	// Credenciales estáticas opcionales; vacías => cadena default de AWS.
	AccessKeyID     string
	SecretAccessKey string
}

// ProgressRepo guarda un objeto JSON por clave dueño/tag; la clave va escapada.
type ProgressRepo struct {
	client *s3.Client
	bucket string
	prefix string
}

func New(ctx context.Context, cfg Config) (*ProgressRepo, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// checksums solo si la operación los exige (MinIO y similares)
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient permite inyectar un cliente ya configurado (tests).
func NewWithClient(client *s3.Client, bucket, prefix string) *ProgressRepo {
	if prefix == "" {
		prefix = "progress/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ProgressRepo{client: client, bucket: bucket, prefix: prefix}
}

func (r *ProgressRepo) key(tag string) string {
	return r.prefix + url.PathEscape(tag) + ".json"
}

func (r *ProgressRepo) Get(ctx context.Context, tag string) (dosing.Progress, bool, error) {
	key := r.key(tag)
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &r.bucket, Key: &key})
	if err != nil {
		if isNotFound(err) {
			return dosing.Progress{}, false, nil
		}
		return dosing.Progress{}, false, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return dosing.Progress{}, false, fmt.Errorf("s3 read %s: %w", key, err)
	}
	var p dosing.Progress
	if err := json.Unmarshal(payload, &p); err != nil {
		return dosing.Progress{}, false, fmt.Errorf("%w: %s: %v", dosing.ErrCorruptProgress, tag, err)
	}
	return p, true, nil
}

func (r *ProgressRepo) Put(ctx context.Context, tag string, p dosing.Progress) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	key := r.key(tag)
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// isNotFound: NoSuchKey tipado o, en S3 compatibles, el código crudo.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
