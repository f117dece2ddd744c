package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/logger"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ObjectUploader is the part of the S3 client the image service needs.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe photos in S3.
type ImageService struct {
	s3Config *config.S3Config
	uploader ObjectUploader
}

// NewImageService creates an ImageService. With a nil config every upload
// fails with ErrStorageUnavailable.
func NewImageService(s3Config *config.S3Config) *ImageService {
	s := &ImageService{s3Config: s3Config}
	if s3Config != nil && s3Config.Client != nil {
		s.uploader = s3Config.Client
	}
	return s
}

// WithUploader replaces the S3 client, mainly for tests.
func (s *ImageService) WithUploader(u ObjectUploader) *ImageService {
	s.uploader = u
	return s
}

// UploadRecipeImage validates and uploads an image for a recipe and returns
// its public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error) {
	if s.s3Config == nil || s.uploader == nil {
		return "", ErrStorageUnavailable
	}

	contentType, ext, err := imageType(filename, contentType)
	if err != nil {
		return "", err
	}
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New(), ext)
	_, err = s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.s3Config.ObjectURL(key)
	logger.For("image").Infof("Uploaded image for recipe %s to %s", recipeID, url)
	return url, nil
}

// imageType resolves the stored content type and file extension. The
// declared content type wins; the file name is used when it is missing or
// generic.
func imageType(filename, contentType string) (string, string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if ext, ok := imageTypes[ct]; ok {
		return ct, ext, nil
	}
	if ct == "" || ct == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(filename))
		if ct, ok := imageExtensions[ext]; ok {
			return ct, imageTypes[ct], nil
		}
	}
	return "", "", ErrUnsupportedImageType
}
