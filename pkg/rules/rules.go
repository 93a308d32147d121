package rules

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/trailwatch/trailwatch/pkg/cloudtrail"
	"github.com/trailwatch/trailwatch/pkg/structs"
	yaml "gopkg.in/yaml.v2"
)

var Severities = []string{"info", "warning", "critical"}

// Rule describes one class of CloudTrail records worth alerting on.
// Patterns are globs over the record fields. Conditions are combined
// with AND; a rule that names error codes only matches errored records.
type Rule struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Events      []string `yaml:"events,omitempty"`
	Sources     []string `yaml:"sources,omitempty"`
	ErrorCodes  []string `yaml:"error_codes,omitempty"`
	ReadOnly    *bool    `yaml:"read_only,omitempty"`
	Severity    string   `yaml:"severity,omitempty"`
	Channel     string   `yaml:"channel,omitempty"`
	Title       string   `yaml:"title,omitempty"`

	events  []glob.Glob
	sources []glob.Glob
	ecodes  []glob.Glob
}

type Rules []*Rule

// Load parses a YAML ruleset and compiles its patterns.
//
//	rules:
//	  - name: run-instances
//	    events: [RunInstances]
//	    severity: critical
func Load(data []byte) (Rules, error) {
	var f struct {
		Rules []*Rule `yaml:"rules"`
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "invalid rules")
	}

	rs := Rules(f.Rules)

	if err := rs.Validate(); err != nil {
		return nil, err
	}

	return rs, nil
}

// Default reproduces the stock ruleset: alert on instance launches and
// on any errored API call.
func Default() Rules {
	rs := Rules{
		&Rule{
			Name:     "run-instances",
			Events:   []string{"RunInstances"},
			Severity: "critical",
			Title:    "Instance Names",
		},
		&Rule{
			Name:       "api-errors",
			ErrorCodes: []string{"*"},
			Severity:   "warning",
		},
	}

	if err := rs.Validate(); err != nil {
		panic(err)
	}

	return rs
}

func (rs Rules) Validate() error {
	names := map[string]bool{}

	for _, r := range rs {
		if r.Name == "" {
			return fmt.Errorf("rule with no name")
		}

		if names[r.Name] {
			return fmt.Errorf("duplicate rule: %s", r.Name)
		}
		names[r.Name] = true

		if len(r.Events) == 0 && len(r.ErrorCodes) == 0 {
			return fmt.Errorf("rule must list events or error_codes: %s", r.Name)
		}

		if r.Severity == "" {
			r.Severity = "info"
		}

		if !validSeverity(r.Severity) {
			return fmt.Errorf("invalid severity for rule %s: %s", r.Name, r.Severity)
		}

		if err := r.compile(); err != nil {
			return errors.Wrapf(err, "rule %s", r.Name)
		}
	}

	return nil
}

// Match returns the rules matching a record. Records are matched
// against every rule so a single call can raise multiple alerts.
func (rs Rules) Match(r cloudtrail.Record) Rules {
	matched := Rules{}

	for _, rule := range rs {
		if rule.Matches(r) {
			matched = append(matched, rule)
		}
	}

	return matched
}

func (r *Rule) Matches(rec cloudtrail.Record) bool {
	if r.ReadOnly != nil && *r.ReadOnly != rec.ReadOnly {
		return false
	}

	if len(r.events) > 0 && !matchAny(r.events, rec.EventName) {
		return false
	}

	if len(r.sources) > 0 && !matchAny(r.sources, rec.EventSource) {
		return false
	}

	if len(r.ecodes) > 0 {
		if !rec.Errored() || !matchAny(r.ecodes, rec.ErrorCode) {
			return false
		}
	}

	return true
}

// Alert builds the notification for a matched record.
func (r *Rule) Alert(rec cloudtrail.Record) *structs.Alert {
	role, user := rec.Actor()

	a := structs.NewAlert(r.Name)

	a.Severity = r.Severity
	a.Channel = r.Channel
	a.Title = coalesce(r.Title, "Resources")
	a.Message = fmt.Sprintf("%s event detected.", rec.EventName)
	a.User = user
	a.Role = role
	a.Resources = rec.InstanceIds()
	a.Account = rec.RecipientAccountId
	a.Region = rec.AwsRegion
	a.Source = rec.EventSource
	a.ErrorCode = rec.ErrorCode

	if !rec.Time().IsZero() {
		a.Timestamp = rec.Time()
	}

	if rec.Errored() {
		a.Message = fmt.Sprintf("%s failed: %s", rec.EventName, rec.ErrorCode)
		if rec.ErrorMessage != "" {
			a.Resources = []string{rec.ErrorMessage}
		}
	}

	return a
}

func (r *Rule) compile() error {
	var err error

	if r.events, err = compile(r.Events); err != nil {
		return err
	}

	if r.sources, err = compile(r.Sources); err != nil {
		return err
	}

	if r.ecodes, err = compile(r.ErrorCodes); err != nil {
		return err
	}

	return nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	gs := make([]glob.Glob, len(patterns))

	for i, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %s", p)
		}
		gs[i] = g
	}

	return gs, nil
}

func matchAny(gs []glob.Glob, s string) bool {
	for _, g := range gs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

func validSeverity(s string) bool {
	for _, v := range Severities {
		if v == strings.ToLower(s) {
			return true
		}
	}
	return false
}

func coalesce(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
