package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// signedURLTTL keeps download links short-lived; readers re-request a
// fresh link on every page load.
const signedURLTTL = 60 * time.Second

// S3PresignAPI issues pre-signed GET URLs. Satisfied by *s3.PresignClient.
type S3PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner hands out short-lived download URLs for e-book files.
type Presigner struct {
	api    S3PresignAPI
	bucket string
}

func NewPresigner(api S3PresignAPI, bucket string) *Presigner {
	return &Presigner{api: api, bucket: bucket}
}

// SignedBookURL returns a pre-signed GET URL for the given object key.
func (p *Presigner) SignedBookURL(ctx context.Context, objectKey string) (string, error) {
	req, err := p.api.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objectKey),
	}, func(o *s3.PresignOptions) {
		o.Expires = signedURLTTL
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
