package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/movieapi/internal/common"
	sc "github.com/dmitrijs2005/movieapi/internal/server/config"
	"github.com/google/uuid"
)

// PosterStorage hands out upload URLs for poster images.
type PosterStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	ObjectURL(key string) string
}

// PosterUpload is returned to the client: PUT the image to UploadURL before
// ExpiresAt, after which the movie's poster is served from PosterURL.
type PosterUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	PosterURL string    `json:"posterUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

var posterExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func posterKey(movieID int64, ext string) string {
	return fmt.Sprintf("posters/%d/%s%s", movieID, uuid.New(), ext)
}

// RequestPosterUpload presigns an upload for an existing movie and points
// its poster URL at the new object. An empty contentType means image/jpeg.
//
// The poster URL is recorded when the upload is requested, not when it
// completes. If the client never PUTs the image, the movie references an
// object that does not exist until a later request replaces the URL.
func (s *MovieService) RequestPosterUpload(ctx context.Context, movieID int64, contentType string) (*PosterUpload, error) {
	if s.posters == nil {
		return nil, common.ErrStorageDisabled
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext, ok := posterExtensions[contentType]
	if !ok {
		return nil, common.ErrUnsupportedMedia
	}

	if _, err := s.GetMovie(ctx, movieID); err != nil {
		return nil, err
	}

	key := posterKey(movieID, ext)
	uploadURL, err := s.posters.PresignUpload(ctx, key, contentType, s.posterTTL)
	if err != nil {
		return nil, fmt.Errorf("error presigning poster upload: %w", err)
	}

	posterURL := s.posters.ObjectURL(key)
	if err := s.repomanager.Movies(s.db).SetPosterURL(ctx, movieID, posterURL); err != nil {
		return nil, notFoundOr(err, "error saving poster url")
	}

	return &PosterUpload{
		Key:       key,
		UploadURL: uploadURL,
		PosterURL: posterURL,
		ExpiresAt: time.Now().Add(s.posterTTL),
	}, nil
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// S3PosterStorage presigns PUT URLs against an S3-compatible endpoint
// (AWS or MinIO, path-style addressing).
type S3PosterStorage struct {
	user, password string
	bucket, region string
	baseEndpoint   string
}

func NewS3PosterStorage(cfg *sc.Config) *S3PosterStorage {
	return &S3PosterStorage{
		user:         cfg.S3RootUser,
		password:     cfg.S3RootPassword,
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		baseEndpoint: cfg.S3BaseEndpoint,
	}
}

func (s *S3PosterStorage) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.user, s.password, "")),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.baseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.baseEndpoint)
		}
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *S3PosterStorage) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *S3PosterStorage) ObjectURL(key string) string {
	if s.baseEndpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.baseEndpoint, "/"), s.bucket, key)
}
