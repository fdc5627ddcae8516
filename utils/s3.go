package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store wraps the two S3 operations the app needs: fetching the exported
// calorie model and storing meal photos.
type S3Store struct {
	client        *s3.Client
	bucket        string
	cloudFrontURL string
}

func NewS3Store(cfg aws.Config, bucket, cloudFrontURL string) *S3Store {
	return &S3Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		cloudFrontURL: strings.TrimRight(cloudFrontURL, "/"),
	}
}

func (s *S3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// UploadMealPhoto stores a decoded data URI under meal-photos/ and returns
// its public URL.
func (s *S3Store) UploadMealPhoto(ctx context.Context, img DataURI, prefix string) (string, error) {
	key := fmt.Sprintf("meal-photos/%s-%d%s", prefix, time.Now().UnixNano(), img.Ext())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if s.cloudFrontURL == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
	}
	return fmt.Sprintf("%s/%s", s.cloudFrontURL, key), nil
}
