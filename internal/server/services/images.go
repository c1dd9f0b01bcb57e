package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	sc "github.com/wemurs1/RoyalVilla/internal/server/config"
	"github.com/wemurs1/RoyalVilla/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpiry is how long generated upload/download links stay valid.
const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageService issues presigned S3 URLs for villa photos and records the
// stored object on the villa row once uploaded.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ImageService {
	return &ImageService{
		db:          db,
		repomanager: m,
		config:      config,
	}
}

// randomStorageKey spreads objects across date prefixes so a bucket
// listing stays navigable.
func randomStorageKey(villaID string) string {
	d := time.Now()
	return fmt.Sprintf("villas/%s/%d/%d/%d/%v", villaID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a presigned PUT URL for a new photo of the villa,
// together with the object key the caller must confirm after uploading.
// The villa must exist.
func (s *ImageService) UploadURL(ctx context.Context, villaID string) (string, string, error) {
	if _, err := s.repomanager.Villas(s.db).GetByID(ctx, villaID); err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey(villaID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// ConfirmUpload records the uploaded object on the villa row and returns
// a presigned GET URL for immediate display.
func (s *ImageService) ConfirmUpload(ctx context.Context, villaID string, key string) (string, error) {
	url, err := s.DownloadURL(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.repomanager.Villas(s.db).SetImage(ctx, villaID, key, url); err != nil {
		return "", fmt.Errorf("error updating villa image: %w", err)
	}
	return url, nil
}

// DownloadURL returns a presigned GET URL for the stored object.
func (s *ImageService) DownloadURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
