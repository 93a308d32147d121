package aws

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/convox/logger"
)

type Provider struct {
	Region   string
	Endpoint string
	Access   string
	Secret   string
	Token    string

	// injectable for tests
	S3  s3iface.S3API
	SNS snsiface.SNSAPI

	logger *logger.Logger
}

// FromEnv returns a provider using ambient credentials. Inside Lambda
// the execution role supplies them, so empty static credentials fall
// through to the default chain.
func FromEnv() *Provider {
	return &Provider{
		Region:   os.Getenv("AWS_REGION"),
		Endpoint: os.Getenv("AWS_ENDPOINT"),
		Access:   os.Getenv("AWS_ACCESS_KEY_ID"),
		Secret:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Token:    os.Getenv("AWS_SESSION_TOKEN"),
		logger:   logger.New("ns=trailwatch.aws"),
	}
}

/** services ****************************************************************************************/

func (p *Provider) config() *aws.Config {
	config := &aws.Config{}

	if p.Access != "" {
		config.Credentials = credentials.NewStaticCredentials(p.Access, p.Secret, p.Token)
	}

	if p.Region != "" {
		config.Region = aws.String(p.Region)
	}

	if p.Endpoint != "" {
		config.Endpoint = aws.String(p.Endpoint)
	}

	if os.Getenv("DEBUG") != "" {
		config.WithLogLevel(aws.LogDebugWithHTTPBody)
	}

	return config
}

// s3 returns an S3 client configured to use the path style
// (http://s3.amazonaws.com/bucket/key) since path style is easier to
// test against local endpoints.
func (p *Provider) s3() s3iface.S3API {
	if p.S3 != nil {
		return p.S3
	}

	return s3.New(session.New(), p.config().WithS3ForcePathStyle(true))
}

func (p *Provider) sns() snsiface.SNSAPI {
	if p.SNS != nil {
		return p.SNS
	}

	return sns.New(session.New(), p.config())
}

func (p *Provider) log() *logger.Logger {
	if p.logger == nil {
		p.logger = logger.New("ns=trailwatch.aws")
	}

	return p.logger
}
