package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trailwatch/trailwatch/pkg/notify"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

type stubNotifier struct {
	sent []*structs.Alert
	err  error
}

func (s *stubNotifier) Send(ctx context.Context, a *structs.Alert) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, a)
	return nil
}

type stubPublisher struct {
	topic   string
	subject string
	message string
	err     error
}

func (s *stubPublisher) Publish(topic, subject, message string) error {
	if s.err != nil {
		return s.err
	}
	s.topic = topic
	s.subject = subject
	s.message = message
	return nil
}

func TestMultiSend(t *testing.T) {
	a := testAlert()
	n1 := &stubNotifier{}
	n2 := &stubNotifier{}

	err := notify.Multi{n1, n2}.Send(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, n1.sent, 1)
	require.Len(t, n2.sent, 1)
}

func TestMultiSendPartialFailure(t *testing.T) {
	a := testAlert()
	n1 := &stubNotifier{err: fmt.Errorf("webhook down")}
	n2 := &stubNotifier{}

	err := notify.Multi{n1, n2}.Send(context.Background(), a)
	require.Error(t, err)
	require.Contains(t, err.Error(), "webhook down")

	// delivery continues past the failing notifier
	require.Len(t, n2.sent, 1)
}

func TestSNSSend(t *testing.T) {
	p := &stubPublisher{}
	a := testAlert()

	err := notify.NewSNS(p, "arn:aws:sns:us-east-1:123456789012:alerts").Send(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, "arn:aws:sns:us-east-1:123456789012:alerts", p.topic)
	require.Equal(t, "RunInstances event detected.", p.subject)

	var sent structs.Alert
	require.NoError(t, json.Unmarshal([]byte(p.message), &sent))
	require.Equal(t, a.Id, sent.Id)
	require.Equal(t, a.Rule, sent.Rule)
	require.Equal(t, a.Resources, sent.Resources)
}

func TestSNSSendError(t *testing.T) {
	p := &stubPublisher{err: fmt.Errorf("no topic")}

	err := notify.NewSNS(p, "topic").Send(context.Background(), testAlert())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no topic")
}
