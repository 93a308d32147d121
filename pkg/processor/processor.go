package processor

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/convox/logger"
	"github.com/pkg/errors"
	"github.com/trailwatch/trailwatch/pkg/cache"
	"github.com/trailwatch/trailwatch/pkg/cloudtrail"
	"github.com/trailwatch/trailwatch/pkg/notify"
	"github.com/trailwatch/trailwatch/pkg/rules"
	"github.com/trailwatch/trailwatch/provider/aws"
)

// Storage is the provider surface the processor needs.
type Storage interface {
	ObjectFetch(bucket, key string) (io.ReadCloser, error)
}

// Processor turns S3 object-created events for CloudTrail deliveries
// into alerts.
type Processor struct {
	Provider  Storage
	Rules     rules.Rules
	Notifier  notify.Notifier
	DedupeTTL time.Duration

	logger *logger.Logger
}

// FromEnv wires a processor for the Lambda runtime.
//
//	SLACK_URL           incoming webhook (optional if topic set)
//	NOTIFICATION_TOPIC  SNS topic arn for fan-out (optional)
//	RULES               inline YAML ruleset
//	RULES_BUCKET/KEY    ruleset object in S3 (overridden by RULES)
//	DEDUPE_TTL          alert dedupe window, default 15m
func FromEnv() (*Processor, error) {
	p := &Processor{
		Provider:  aws.FromEnv(),
		DedupeTTL: 15 * time.Minute,
		logger:    logger.New("ns=trailwatch.processor"),
	}

	if v := os.Getenv("DEDUPE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, "DEDUPE_TTL")
		}
		p.DedupeTTL = d
	}

	rs, err := rulesFromEnv(p.Provider)
	if err != nil {
		return nil, err
	}
	p.Rules = rs

	n := notify.Multi{}

	if v := os.Getenv("SLACK_URL"); v != "" {
		n = append(n, notify.NewSlack(v))
	}

	if v := os.Getenv("NOTIFICATION_TOPIC"); v != "" {
		pub, ok := p.Provider.(notify.Publisher)
		if !ok {
			return nil, fmt.Errorf("provider can not publish")
		}
		n = append(n, notify.NewSNS(pub, v))
	}

	if len(n) == 0 {
		return nil, fmt.Errorf("no notifier configured, set SLACK_URL or NOTIFICATION_TOPIC")
	}

	p.Notifier = n

	return p, nil
}

func rulesFromEnv(storage Storage) (rules.Rules, error) {
	if v := os.Getenv("RULES"); v != "" {
		return rules.Load([]byte(v))
	}

	bucket := os.Getenv("RULES_BUCKET")
	key := os.Getenv("RULES_KEY")

	if bucket != "" && key != "" {
		r, err := storage.ObjectFetch(bucket, key)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		data, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return rules.Load(data)
	}

	return rules.Default(), nil
}

// Process handles one S3 event. A digest that fails to fetch or decode
// is logged and skipped so a poison object can not wedge the trigger;
// the invocation only errors when every record failed.
func (p *Processor) Process(ctx context.Context, e events.S3Event) error {
	log := p.log().At("Process").Namespace("records=%d", len(e.Records)).Start()

	failed := 0

	for _, r := range e.Records {
		bucket := r.S3.Bucket.Name
		key := objectKey(r)

		if err := p.processObject(ctx, bucket, key); err != nil {
			log.Namespace("bucket=%q key=%q", bucket, key).Error(err)
			failed++
		}
	}

	if failed > 0 && failed == len(e.Records) {
		return fmt.Errorf("all %d objects failed", failed)
	}

	log.Successf("failed=%d", failed)

	return nil
}

func (p *Processor) processObject(ctx context.Context, bucket, key string) error {
	log := p.log().At("processObject").Namespace("bucket=%q key=%q", bucket, key).Start()

	r, err := p.Provider.ObjectFetch(bucket, key)
	if err != nil {
		return err
	}
	defer r.Close()

	d, err := cloudtrail.Decode(r)
	if err != nil {
		return err
	}

	sent := 0
	failed := 0

	for _, rec := range d.Records {
		for _, rule := range p.Rules.Match(rec) {
			if p.seen(rule.Name, rec.EventID) {
				continue
			}

			if err := p.Notifier.Send(ctx, rule.Alert(rec)); err != nil {
				log.Error(err)
				failed++
				continue
			}

			p.mark(rule.Name, rec.EventID)
			sent++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d alerts failed to send", failed)
	}

	log.Successf("records=%d alerts=%d", len(d.Records), sent)

	return nil
}

// CloudTrail re-delivers overlapping digests, so an (eventID, rule)
// pair only alerts once per TTL window.
func (p *Processor) seen(rule, eventID string) bool {
	if eventID == "" {
		return false
	}

	return cache.Get("alerts", dedupeKey{rule, eventID}) != nil
}

func (p *Processor) mark(rule, eventID string) {
	if eventID == "" {
		return
	}

	cache.Set("alerts", dedupeKey{rule, eventID}, true, p.DedupeTTL)
}

type dedupeKey struct {
	Rule    string
	EventID string
}

func (p *Processor) log() *logger.Logger {
	if p.logger == nil {
		p.logger = logger.New("ns=trailwatch.processor")
	}

	return p.logger
}

// event notification keys arrive url-encoded
func objectKey(r events.S3EventRecord) string {
	key := r.S3.Object.Key

	if k, err := url.QueryUnescape(key); err == nil {
		return k
	}

	return key
}
