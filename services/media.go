package services

import (
	"context"
	"fmt"
	"time"

	"kacchi/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const PresignExpiry = 15 * time.Minute

// MediaPresigner hands out direct-upload URLs for user media.
type MediaPresigner interface {
	PresignUpload(ctx context.Context, userID string, req model.PresignRequest) (*model.PresignedUpload, error)
}

type S3Options struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
}

type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	now    func() time.Time
}

func NewS3Presigner(ctx context.Context, o S3Options) (*S3Presigner, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		if o.Endpoint != "" {
			opts.BaseEndpoint = aws.String(o.Endpoint)
			opts.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: o.Bucket,
		now:    time.Now,
	}, nil
}

// StorageKey lays objects out as users/<uid>/<kind>/<yyyy>/<mm>/<uuid>.
func StorageKey(userID string, kind model.UploadKind, at time.Time) string {
	return fmt.Sprintf("users/%s/%s/%04d/%02d/%s", userID, kind, at.Year(), int(at.Month()), uuid.NewString())
}

func (p *S3Presigner) PresignUpload(ctx context.Context, userID string, req model.PresignRequest) (*model.PresignedUpload, error) {
	issued := p.now().UTC()
	key := StorageKey(userID, req.Kind, issued)

	out, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &model.PresignedUpload{
		Key:       key,
		UploadURL: out.URL,
		ExpiresAt: issued.Add(PresignExpiry),
	}, nil
}

// DisabledPresigner answers every request with model.ErrStorageDisabled.
type DisabledPresigner struct{}

func (DisabledPresigner) PresignUpload(context.Context, string, model.PresignRequest) (*model.PresignedUpload, error) {
	return nil, model.ErrStorageDisabled
}
