package notify

import (
	"context"
	"encoding/json"

	"github.com/convox/logger"
	"github.com/pkg/errors"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

// Publisher is the provider surface the SNS notifier needs.
type Publisher interface {
	Publish(topic, subject, message string) error
}

// SNS publishes alerts to a topic for downstream fan-out (pagers,
// ticketing, other webhooks). The payload is the JSON alert.
type SNS struct {
	Topic     string
	Publisher Publisher

	logger *logger.Logger
}

func NewSNS(p Publisher, topic string) *SNS {
	return &SNS{
		Topic:     topic,
		Publisher: p,
		logger:    logger.New("ns=trailwatch.notify.sns"),
	}
}

func (s *SNS) Send(ctx context.Context, a *structs.Alert) error {
	log := s.logger.At("Send").Namespace("rule=%s alert=%s", a.Rule, a.Id).Start()

	data, err := json.Marshal(a)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := s.Publisher.Publish(s.Topic, a.Message, string(data)); err != nil {
		return log.Error(err)
	}

	log.Success()

	return nil
}
