package aws

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
)

func (p *Provider) ObjectExists(bucket, key string) (bool, error) {
	_, err := p.s3().HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err, ok := err.(awserr.Error); ok && err.Code() == "NotFound" {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// ObjectFetch fetches an object
func (p *Provider) ObjectFetch(bucket, key string) (io.ReadCloser, error) {
	res, err := p.s3().GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if ae, ok := err.(awserr.Error); ok && ae.Code() == "NoSuchKey" {
		return nil, errorNotFound(fmt.Sprintf("no such key: %s", key))
	}
	if err != nil {
		return nil, err
	}

	return res.Body, nil
}

func (p *Provider) ObjectList(bucket, prefix string) ([]string, error) {
	log := p.log().At("ObjectList").Namespace("bucket=%q prefix=%q", bucket, prefix).Start()

	keys := []string{}

	req := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	for {
		res, err := p.s3().ListObjectsV2(req)
		if err != nil {
			return nil, log.Error(err)
		}

		for _, o := range res.Contents {
			keys = append(keys, *o.Key)
		}

		if res.NextContinuationToken == nil {
			break
		}

		req.ContinuationToken = res.NextContinuationToken
	}

	log.Successf("keys=%d", len(keys))

	return keys, nil
}
