package aws

import (
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/stretchr/testify/mock"
)

type SNSAPI struct {
	snsiface.SNSAPI
	mock.Mock
}

func (m *SNSAPI) Publish(input *sns.PublishInput) (*sns.PublishOutput, error) {
	args := m.Called(input)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}
