package aws

import (
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/mock"
)

// S3API mocks the S3 operations the provider uses. The embedded
// interface panics on anything without an expectation.
type S3API struct {
	s3iface.S3API
	mock.Mock
}

func (m *S3API) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	args := m.Called(input)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *S3API) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	args := m.Called(input)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *S3API) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	args := m.Called(input)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}
