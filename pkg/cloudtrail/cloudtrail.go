package cloudtrail

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Digest is one CloudTrail log file as delivered to S3.
type Digest struct {
	Records []Record `json:"Records"`
}

type Record struct {
	AwsRegion          string          `json:"awsRegion"`
	ErrorCode          string          `json:"errorCode"`
	ErrorMessage       string          `json:"errorMessage"`
	EventID            string          `json:"eventID"`
	EventName          string          `json:"eventName"`
	EventSource        string          `json:"eventSource"`
	EventTime          string          `json:"eventTime"`
	ReadOnly           bool            `json:"readOnly"`
	RecipientAccountId string          `json:"recipientAccountId"`
	RequestParameters  json.RawMessage `json:"requestParameters"`
	ResponseElements   json.RawMessage `json:"responseElements"`
	SourceIPAddress    string          `json:"sourceIPAddress"`
	UserIdentity       Identity        `json:"userIdentity"`
}

type Identity struct {
	AccountId string `json:"accountId"`
	Arn       string `json:"arn"`
	Type      string `json:"type"`
	UserName  string `json:"userName"`
}

// Decode reads a CloudTrail digest. Delivered objects are gzipped but
// replayed local fixtures may not be, so sniff the magic bytes.
func Decode(r io.Reader) (*Digest, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, errors.WithStack(err)
	}

	var dr io.Reader = br

	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer gz.Close()
		dr = gz
	}

	var d Digest

	if err := json.NewDecoder(dr).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "invalid digest")
	}

	return &d, nil
}

func (r *Record) Errored() bool {
	return r.ErrorCode != ""
}

func (r *Record) Time() time.Time {
	t, err := time.Parse(time.RFC3339, r.EventTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Actor splits the calling identity into an assumed role and a user.
// Assumed-role arns look like arn:aws:sts::123456789012:assumed-role/role/user
// and carry both. Other identity types have no role component.
func (r *Record) Actor() (string, string) {
	arn := r.UserIdentity.Arn

	if parts := strings.Split(arn, "/"); len(parts) == 3 {
		return parts[1], parts[2]
	}

	switch r.UserIdentity.Type {
	case "IAMUser":
		if r.UserIdentity.UserName != "" {
			return "", r.UserIdentity.UserName
		}
	case "Root":
		return "", "root"
	}

	if parts := strings.Split(arn, "/"); len(parts) == 2 {
		return "", parts[1]
	}

	return "", arn
}

// InstanceIds returns the instance ids from a RunInstances-style
// response. Errored and dry-run calls have no responseElements.
func (r *Record) InstanceIds() []string {
	if len(r.ResponseElements) == 0 {
		return nil
	}

	var res struct {
		InstancesSet struct {
			Items []struct {
				InstanceId string `json:"instanceId"`
			} `json:"items"`
		} `json:"instancesSet"`
	}

	if err := json.Unmarshal(r.ResponseElements, &res); err != nil {
		return nil
	}

	ids := []string{}

	for _, item := range res.InstancesSet.Items {
		if item.InstanceId != "" {
			ids = append(ids, item.InstanceId)
		}
	}

	return ids
}
