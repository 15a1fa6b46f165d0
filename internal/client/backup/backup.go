// Package backup exports profile snapshots to S3-compatible object storage.
// Export is one-way; nothing is ever read back or merged. With a passphrase
// configured, snapshots are sealed before they leave the device.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/dmitrijs2005/lexiconquest/internal/cryptox"
)

var ErrNotConfigured = errors.New("backup bucket is not configured")

var loadDefaultAWSConfig = config.LoadDefaultConfig

// Config locates the bucket. Endpoint is set for MinIO and other
// S3-compatible services; empty means AWS.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// Passphrase, when set, encrypts snapshots with cryptox.
	Passphrase string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Snapshot is the exported document.
type Snapshot struct {
	Identity   models.Identity `json:"identity"`
	Profile    models.Profile  `json:"profile"`
	ExportedAt time.Time       `json:"exportedAt"`
}

type S3Exporter struct {
	client     putObjectAPI
	bucket     string
	passphrase []byte
	now        func() time.Time
}

// NewS3Exporter builds an S3 client from cfg.
func NewS3Exporter(ctx context.Context, cfg Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	e := &S3Exporter{client: client, bucket: cfg.Bucket, now: time.Now}
	if cfg.Passphrase != "" {
		e.passphrase = []byte(cfg.Passphrase)
	}
	return e, nil
}

// ObjectKey places snapshots of one identity under a dated prefix.
func ObjectKey(identityID string, at time.Time) string {
	return fmt.Sprintf("profiles/%s/%d/%02d/%02d/%v.json", identityID, at.Year(), at.Month(), at.Day(), uuid.New())
}

// Export uploads a snapshot of p and returns its object key.
func (e *S3Exporter) Export(ctx context.Context, id models.Identity, p models.Profile) (string, error) {
	at := e.now().UTC()
	body, err := e.encode(Snapshot{Identity: id, Profile: p, ExportedAt: at})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := ObjectKey(id.ID, at)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

// encode renders the uploaded document: the snapshot itself, or its sealed
// envelope when a passphrase is set.
func (e *S3Exporter) encode(snap Snapshot) ([]byte, error) {
	if len(e.passphrase) == 0 {
		return json.MarshalIndent(snap, "", "  ")
	}
	env, err := cryptox.Seal(snap, e.passphrase)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}
