package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/convox/logger"
	"github.com/pkg/errors"
	"github.com/trailwatch/trailwatch/pkg/helpers"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

// Slack posts alerts to an incoming webhook.
type Slack struct {
	URL string

	Client   *http.Client
	Retries  int
	Interval time.Duration

	logger *logger.Logger
}

type slackMessage struct {
	Text        string            `json:"text"`
	Channel     string            `json:"channel,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	AuthorName string `json:"author_name,omitempty"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text,omitempty"`
	Footer     string `json:"footer,omitempty"`
	Color      string `json:"color"`
	Timestamp  int64  `json:"ts,omitempty"`
}

func NewSlack(url string) *Slack {
	return &Slack{
		URL:      url,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Retries:  2,
		Interval: 1 * time.Second,
		logger:   logger.New("ns=trailwatch.notify.slack"),
	}
}

func (s *Slack) Send(ctx context.Context, a *structs.Alert) error {
	log := s.logger.At("Send").Namespace("rule=%s alert=%s", a.Rule, a.Id).Start()

	data, err := json.Marshal(s.message(a))
	if err != nil {
		return errors.WithStack(err)
	}

	err = helpers.Retry(s.Retries, s.Interval, func() error {
		return s.post(ctx, data)
	})
	if err != nil {
		return log.Error(err)
	}

	log.Success()

	return nil
}

func (s *Slack) post(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, "POST", s.URL, bytes.NewReader(data))
	if err != nil {
		return errors.WithStack(err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := s.Client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer res.Body.Close()

	io.Copy(ioutil.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("slack webhook returned %d", res.StatusCode)
	}

	return nil
}

func (s *Slack) message(a *structs.Alert) slackMessage {
	att := slackAttachment{
		Title: a.Title,
		Text:  strings.Join(a.Resources, "\n"),
		Color: severityColor(a.Severity),
	}

	if a.User != "" || a.Role != "" {
		att.AuthorName = fmt.Sprintf("User: %s\nRole: %s", a.User, a.Role)
	}

	footer := []string{}

	if a.Account != "" {
		footer = append(footer, a.Account)
	}
	if a.Region != "" {
		footer = append(footer, a.Region)
	}
	if a.Source != "" {
		footer = append(footer, a.Source)
	}

	att.Footer = strings.Join(footer, " | ")

	if !a.Timestamp.IsZero() {
		att.Timestamp = a.Timestamp.Unix()
	}

	return slackMessage{
		Text:        a.Message,
		Channel:     a.Channel,
		Attachments: []slackAttachment{att},
	}
}
