package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/service"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func newImageService(u service.ObjectUploader) *service.ImageService {
	return service.NewImageService(&config.S3Config{BucketName: "recipes-bucket", Region: "us-east-1"}).WithUploader(u)
}

func TestUploadRecipeImage(t *testing.T) {
	uploader := new(mockUploader)
	recipeID := uuid.New()
	prefix := "recipes/" + recipeID.String() + "/"

	uploader.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "recipes-bucket" &&
			strings.HasPrefix(aws.ToString(in.Key), prefix) &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	url, err := newImageService(uploader).UploadRecipeImage(context.Background(), recipeID, "photo.png", "image/png", bytes.NewReader([]byte("png")), 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://recipes-bucket.s3.us-east-1.amazonaws.com/"+prefix))
	uploader.AssertExpectations(t)
}

func TestUploadRecipeImageTypeFromFilename(t *testing.T) {
	uploader := new(mockUploader)
	uploader.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.ContentType) == "image/jpeg" && strings.HasSuffix(aws.ToString(in.Key), ".jpg")
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	_, err := newImageService(uploader).UploadRecipeImage(context.Background(), uuid.New(), "IMG_1.JPEG", "application/octet-stream", strings.NewReader("jpg"), 3)
	require.NoError(t, err)
	uploader.AssertExpectations(t)
}

func TestUploadRecipeImageRejects(t *testing.T) {
	ctx := context.Background()
	uploader := new(mockUploader)
	svc := newImageService(uploader)

	_, err := svc.UploadRecipeImage(ctx, uuid.New(), "doc.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, service.ErrUnsupportedImageType)

	_, err = svc.UploadRecipeImage(ctx, uuid.New(), "big.png", "image/png", strings.NewReader("x"), service.MaxImageSize+1)
	assert.ErrorIs(t, err, service.ErrImageTooLarge)

	big := io.LimitReader(zeroReader{}, service.MaxImageSize+10)
	_, err = svc.UploadRecipeImage(ctx, uuid.New(), "big.png", "image/png", big, -1)
	assert.ErrorIs(t, err, service.ErrImageTooLarge)

	uploader.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestUploadRecipeImageStorageErrors(t *testing.T) {
	ctx := context.Background()

	_, err := service.NewImageService(nil).UploadRecipeImage(ctx, uuid.New(), "a.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)

	uploader := new(mockUploader)
	uploader.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))
	_, err = newImageService(uploader).UploadRecipeImage(ctx, uuid.New(), "a.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "access denied")
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
