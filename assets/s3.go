package assets

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3 serves assets from a bucket, under an optional key prefix.
type S3 struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

// NewS3 builds a client the usual way. An empty endpoint means AWS itself,
// anything else (e.g. http://localhost:4566) is treated as a local stand-in.
func NewS3(bucket, prefix, region, endpoint string) (*S3, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}
	return &S3{Client: s3.New(sess), Bucket: bucket, Prefix: prefix}, nil
}

func (s *S3) key(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *S3) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, errors.Wrap(ErrNotFound, name)
		}
		return nil, errors.Wrapf(err, "fetching s3://%v/%v", s.Bucket, s.key(name))
	}
	return out.Body, nil
}
