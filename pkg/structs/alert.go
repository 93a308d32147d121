package structs

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// Alert is a single notification produced by a rule matching a
// CloudTrail record.
type Alert struct {
	Id        string    `json:"id"`
	Rule      string    `json:"rule"`
	Severity  string    `json:"severity"`
	Channel   string    `json:"channel,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	User      string    `json:"user,omitempty"`
	Role      string    `json:"role,omitempty"`
	Resources []string  `json:"resources,omitempty"`
	Account   string    `json:"account,omitempty"`
	Region    string    `json:"region,omitempty"`
	Source    string    `json:"source,omitempty"`
	ErrorCode string    `json:"error-code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewAlert(rule string) *Alert {
	return &Alert{
		Id:        uuid.NewV4().String(),
		Rule:      rule,
		Timestamp: time.Now().UTC(),
	}
}
