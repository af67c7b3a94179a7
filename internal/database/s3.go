package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"memory-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var S3Client *s3.Client

// ConnectS3 initializes the S3-compatible client (Cloudflare R2 or MinIO).
func ConnectS3(cfg *config.Config) {
	ctx := context.Background()

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:           getEndpointURL(cfg.S3Endpoint, cfg.S3UseSSL),
			SigningRegion: cfg.S3Region,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		log.Fatal("Failed to load AWS config: ", err)
	}

	S3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Path-style addressing is required for R2 and MinIO endpoints.
		o.UsePathStyle = true
	})

	log.Printf("✅ Connected to S3-compatible storage (endpoint: %s, bucket: %s)",
		getEndpointURL(cfg.S3Endpoint, cfg.S3UseSSL), cfg.S3BucketMedia)

	// Verify the connection in the background; the API stays up either way.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := S3Client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
			log.Printf("⚠️  S3 connection test failed: %v", err)
		}
	}()
}

// getEndpointURL constructs the full endpoint URL.
func getEndpointURL(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, endpoint)
}

// GeneratePresignedUploadURL generates a pre-signed URL for uploading to R2/S3.
func GeneratePresignedUploadURL(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error) {
	if S3Client == nil {
		return "", fmt.Errorf("S3Client is not initialized")
	}

	presignClient := s3.NewPresignClient(S3Client)

	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiresIn
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}

	return request.URL, nil
}

// GeneratePresignedDownloadURL generates a pre-signed URL for downloading from R2/S3.
func GeneratePresignedDownloadURL(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error) {
	if S3Client == nil {
		return "", fmt.Errorf("S3Client is not initialized")
	}

	presignClient := s3.NewPresignClient(S3Client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiresIn
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return request.URL, nil
}

// DeleteObject removes a stored file. Used when published media is deleted.
func DeleteObject(ctx context.Context, bucket, key string) error {
	if S3Client == nil {
		return fmt.Errorf("S3Client is not initialized")
	}
	_, err := S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}
