// Package storage uploads rendered invoices to the public invoice bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/optistyle/core-engine/internal/awsx"
)

// objectPrefix namespaces invoice PDFs inside the bucket.
const objectPrefix = "invoices"

// Uploader writes invoice PDFs to S3 and returns their public URLs.
type Uploader struct {
	client awsx.S3API
	bucket string
	region string
}

// NewUploader returns an Uploader bound to a bucket.
func NewUploader(client awsx.S3API, bucket, region string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		region: region,
	}
}

// Upload stores the PDF under invoices/<filename> with public-read access and
// returns the object's URL. Callers treat failure as non-fatal: the order
// completes without an invoice URL.
func (u *Uploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	key := fmt.Sprintf("%s/%s", objectPrefix, filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: awsString("application/pdf"),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put invoice object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func awsString(s string) *string { return &s }
