package aws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
)

// Publish sends a message out to an SNS topic.
func (p *Provider) Publish(topic, subject, message string) error {
	log := p.log().At("Publish").Namespace("topic=%q subject=%q", topic, subject).Start()

	_, err := p.sns().Publish(&sns.PublishInput{
		Message:  aws.String(message),
		Subject:  aws.String(subject),
		TopicArn: aws.String(topic),
	})
	if err != nil {
		return log.Error(err)
	}

	log.Success()

	return nil
}
