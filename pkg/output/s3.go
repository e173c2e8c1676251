package output

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/saturnines/polar-sync/pkg/errors"
)

// ObjectPutter is the slice of the S3 API the publisher uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads the generated file to a bucket.
type S3Publisher struct {
	client ObjectPutter
	bucket string
	key    string
}

// NewS3Publisher loads the default AWS credential chain. An empty region
// defers to AWS_REGION and the shared config.
func NewS3Publisher(ctx context.Context, region, bucket, key string) (*S3Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "unable to load AWS config")
	}

	return NewS3PublisherWithClient(s3.NewFromConfig(cfg), bucket, key), nil
}

func NewS3PublisherWithClient(client ObjectPutter, bucket, key string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, key: key}
}

// Publish uploads data and returns the s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, data []byte) (string, error) {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", errors.WrapError(err, errors.ErrOutput, "failed to upload to S3")
	}
	return "s3://" + p.bucket + "/" + p.key, nil
}
