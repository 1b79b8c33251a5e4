package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"loan-qualifier/domain"
)

// S3GetObjectAPI is the part of the S3 client the rate sheet loader needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// RateSheetS3 loads the rate sheet CSV from an S3 object.
type RateSheetS3 struct {
	client S3GetObjectAPI
	bucket string
	key    string
}

func NewRateSheetS3(client S3GetObjectAPI, bucket, key string) *RateSheetS3 {
	return &RateSheetS3{client: client, bucket: bucket, key: key}
}

// NewRateSheetS3FromConfig builds the S3 client from the default AWS
// credential chain.
func NewRateSheetS3FromConfig(ctx context.Context, region, bucket, key string) (*RateSheetS3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewRateSheetS3(s3.NewFromConfig(cfg), bucket, key), nil
}

func (r *RateSheetS3) Source() string {
	return "s3"
}

func (r *RateSheetS3) Location() string {
	return fmt.Sprintf("s3://%s/%s", r.bucket, r.key)
}

func (r *RateSheetS3) Load(ctx context.Context) (domain.RateSheet, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		return nil, domain.NewRateSheetUnavailableError(
			fmt.Sprintf("get %s: %v", r.Location(), err),
		)
	}
	defer out.Body.Close()

	sheet, err := ParseRateSheet(out.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.Location(), err)
	}
	return sheet, nil
}
