package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"inkpress/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type Client struct {
	s3Client s3iface.S3API
	bucket   string
	baseURL  string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := NewWithAPI(s3.New(sess), cfg.S3BucketName, ObjectBaseURL(cfg))

	// Ensure bucket exists (for MinIO)
	if _, err := client.s3Client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
		// An "already owned" error here just means another node won the race.
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3BucketName)})
	}

	return client, nil
}

// NewWithAPI wraps an existing S3 API. Objects are addressed as
// baseURL + "/" + key.
func NewWithAPI(api s3iface.S3API, bucket, baseURL string) *Client {
	return &Client{
		s3Client: api,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// ObjectBaseURL is the public URL prefix of the bucket: path style for MinIO,
// virtual-host style for AWS.
func ObjectBaseURL(cfg *config.Config) string {
	if cfg.AWSEndpoint != "" && !strings.Contains(cfg.AWSEndpoint, "amazonaws.com") {
		protocol := "https"
		if cfg.S3UseSSL == "false" {
			protocol = "http"
		}
		endpoint := strings.TrimPrefix(cfg.AWSEndpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s", protocol, strings.TrimSuffix(endpoint, "/"), cfg.S3BucketName)
	}

	region := cfg.AWSRegion
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3BucketName, region)
}

// Upload stores body under key and returns the object's public URL.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	seeker, ok := body.(io.ReadSeeker)
	if !ok {
		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, body); err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		seeker = bytes.NewReader(buf.Bytes())
	}

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        seeker,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return c.ObjectURL(key), nil
}

func (c *Client) ObjectURL(key string) string {
	return c.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// KeyFromURL returns the key of an object URL built by ObjectURL. URLs
// pointing elsewhere report false.
func (c *Client) KeyFromURL(objectURL string) (string, bool) {
	prefix := c.baseURL + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(objectURL, prefix)
	return key, key != ""
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
