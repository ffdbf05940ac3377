package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidAttachment is returned for uploads that are not images or exceed
// the size cap. The check runs before any network call.
var ErrInvalidAttachment = errors.New("attachment must be an image up to 5 MiB")

// maxAttachmentSize caps course image uploads at 5 MiB.
const maxAttachmentSize = 5 << 20

// assetFolder is the fixed logical folder for course images in the bucket.
const assetFolder = "courses"

// Attachment is an uploaded binary carried from the multipart request into the
// asset store.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AssetService stores course images on the remote asset host and returns
// stable, publicly fetchable URLs.
type AssetService interface {
	Store(ctx context.Context, att *Attachment) (string, error)
	Remove(ctx context.Context, imageURL string) error
}

type assetService struct {
	s3Client  *s3.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

// NewAssetService creates a new AssetService backed by S3-compatible storage.
func NewAssetService(s3Client *s3.Client, bucket, publicURL string, logger zerolog.Logger) AssetService {
	return &assetService{
		s3Client:  s3Client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger.With().Str("service", "AssetService").Logger(),
	}
}

// Store validates the attachment, uploads it under the course image folder and
// returns its public URL.
func (s *assetService) Store(ctx context.Context, att *Attachment) (string, error) {
	if att == nil || !strings.HasPrefix(att.ContentType, "image/") {
		return "", ErrInvalidAttachment
	}
	if att.Size <= 0 || att.Size > maxAttachmentSize {
		return "", ErrInvalidAttachment
	}

	key := fmt.Sprintf("%s/%s%s", assetFolder, uuid.New().String(), strings.ToLower(path.Ext(att.Filename)))
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          att.Body,
		ContentType:   aws.String(att.ContentType),
		ContentLength: aws.Int64(att.Size),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to upload course image")
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Remove deletes the remote object behind a previously stored URL. The object
// key is derived from the URL's final path segment.
func (s *assetService) Remove(ctx context.Context, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}
	key := fmt.Sprintf("%s/%s", assetFolder, path.Base(parsed.Path))

	_, err = s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to delete course image")
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
