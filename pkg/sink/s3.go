package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/disintegration/imaging"

	"github.com/df07/go-diffuse-raytracer/pkg/config"
)

// ErrNoBucket is returned when an S3 sink is requested without a bucket
var ErrNoBucket = errors.New("s3 bucket not configured")

// objectPutter is the part of the S3 client the sink uses
type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Sink uploads the image as a PNG object
type S3Sink struct {
	client objectPutter
	Bucket string
	Key    string
}

// NewS3Sink creates an uploader for an S3-compatible store. An empty endpoint
// uses AWS itself; custom endpoints get path-style addressing.
func NewS3Sink(cfg config.S3Config, key string) (*S3Sink, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBucket
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.Endpoint != ""),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &S3Sink{client: s3.New(sess), Bucket: cfg.Bucket, Key: key}, nil
}

// Write PNG-encodes the image and uploads it
func (s *S3Sink) Write(ctx context.Context, width, height int, pix []byte) error {
	if err := checkBuffer(width, height, pix); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, toImage(width, height, pix), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.Key, err)
	}

	data := buf.Bytes()
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.Key, err)
	}
	return nil
}
