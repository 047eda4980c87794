// Package archive uploads export snapshots to S3-compatible object storage
// under content-addressed keys and hands back presigned download URLs.
package archive

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/crypto/blake2b"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config holds object storage settings.
type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	URLValidity  time.Duration
}

// Result describes a stored archive.
type Result struct {
	Key      string `json:"key"`
	Checksum string `json:"checksum"`
	URL      string `json:"url"`
}

type S3Archiver struct {
	cfg Config
}

func NewS3Archiver(cfg Config) *S3Archiver {
	if cfg.URLValidity <= 0 {
		cfg.URLValidity = 15 * time.Minute
	}
	return &S3Archiver{cfg: cfg}
}

// Checksum returns the hex BLAKE2b-256 digest of payload.
func Checksum(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time, checksum string) string {
	t = t.UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), checksum)
}

func (a *S3Archiver) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(a.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.cfg.AccessKey,
			a.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if a.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(a.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Archive uploads payload and returns its key, checksum and a presigned
// GET URL valid for the configured duration.
func (a *S3Archiver) Archive(ctx context.Context, payload []byte, at time.Time) (*Result, error) {
	client, err := a.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	sum := Checksum(payload)
	key := Key(at, sum)
	bucket := a.cfg.Bucket

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		Metadata:    map[string]string{"blake2b-256": sum},
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(a.cfg.URLValidity))
	if err != nil {
		return nil, fmt.Errorf("s3 presign: %w", err)
	}

	return &Result{Key: key, Checksum: sum, URL: req.URL}, nil
}
