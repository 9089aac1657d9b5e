package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// S3API is the subset of the S3 client used by AudioArchive.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint targets S3-compatible services such as MinIO or R2.
	Endpoint string
}

// NewS3Client builds a client from static credentials. It returns nil when
// no credentials are configured.
func NewS3Client(cfg S3Config) *s3.Client {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts)
}

// AudioArchive keeps a copy of uploaded voice messages. With no bucket or
// client every call is a no-op.
type AudioArchive struct {
	bucket string
	client S3API
	logger *zap.Logger
}

func NewAudioArchive(client S3API, bucket string, logger *zap.Logger) *AudioArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioArchive{bucket: bucket, client: client, logger: logger}
}

func (a *AudioArchive) Enabled() bool {
	return a != nil && a.bucket != "" && a.client != nil
}

// Archive stores data under audio/{owner}/{uuid}{ext} and returns the key.
func (a *AudioArchive) Archive(ctx context.Context, owner string, data []byte, mimeType string) (string, error) {
	if !a.Enabled() {
		return "", nil
	}

	key := fmt.Sprintf("audio/%s/%s%s", owner, uuid.NewString(), extensionFor(mimeType))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: s3 put %s: %w", key, err)
	}

	a.logger.Info("archived audio upload",
		zap.String("owner", owner),
		zap.String("s3_key", key),
		zap.Int("bytes", len(data)),
	)
	return key, nil
}

func extensionFor(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}

	switch strings.TrimSpace(mimeType) {
	case "audio/webm":
		return ".webm"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/flac":
		return ".flac"
	default:
		return ".bin"
	}
}
