// Package s3 is the blob store for uploaded media, backed by any
// S3-compatible endpoint (MinIO in the compose setup). It never proxies
// bytes: clients get presigned URLs and talk to the store directly.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Store struct {
	presign   *s3.PresignClient
	bucket    string
	urlExpiry time.Duration
}

func New(ctx context.Context, endpoint, region, accessKey, secretKey, bucket string, urlExpiry time.Duration) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Store{
		presign:   s3.NewPresignClient(client),
		bucket:    bucket,
		urlExpiry: urlExpiry,
	}, nil
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Store) SignedGetURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.urlExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *Store) SignedPutURL(ctx context.Context) (string, string, error) {
	key := randomStorageKey()
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.urlExpiry))
	if err != nil {
		return "", "", err
	}
	return key, req.URL, nil
}
