package storage

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/PabloDarma22/E-commerce/config"
)

// Uploader pushes product images to an S3 compatible bucket.
type Uploader struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

func NewUploader(cfg config.Config) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.S3Region),
		Endpoint:         aws.String(cfg.S3Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 session: %w", err)
	}

	return &Uploader{
		client:   s3.New(sess),
		bucket:   cfg.S3Bucket,
		endpoint: cfg.S3Endpoint,
	}, nil
}

// Upload stores the object and returns its public URL.
func (u *Uploader) Upload(key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
}
