package cli

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/convox/stdcli"
	"github.com/fatih/color"
	"github.com/trailwatch/trailwatch/pkg/helpers"
	"github.com/trailwatch/trailwatch/pkg/notify"
	"github.com/trailwatch/trailwatch/pkg/rules"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

var (
	flagPost  = stdcli.BoolFlag("post", "p", "deliver matched alerts")
	flagRules = stdcli.StringFlag("rules", "r", "rules file")
)

var severityColors = map[string]color.Attribute{
	"warning":  color.FgYellow,
	"critical": color.FgRed,
}

func loadRules(c *stdcli.Context) (rules.Rules, error) {
	if file := c.String("rules"); file != "" {
		data, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, err
		}

		return rules.Load(data)
	}

	if v := os.Getenv("RULES"); v != "" {
		return rules.Load([]byte(v))
	}

	return rules.Default(), nil
}

func (e *Engine) notifier() (notify.Notifier, error) {
	if e.Notifier != nil {
		return e.Notifier, nil
	}

	n := notify.Multi{}

	if v := os.Getenv("SLACK_URL"); v != "" {
		n = append(n, notify.NewSlack(v))
	}

	if len(n) == 0 {
		return nil, fmt.Errorf("no notifier configured, set SLACK_URL")
	}

	return n, nil
}

// report prints matched alerts and optionally delivers them.
func report(e *Engine, c *stdcli.Context, aa []*structs.Alert) error {
	t := c.Table("RULE", "SEVERITY", "EVENT", "USER", "ROLE", "RESOURCES", "WHEN")

	for _, a := range aa {
		t.AddRow(a.Rule, severity(a.Severity), a.Message, a.User, a.Role, strings.Join(a.Resources, ","), helpers.Ago(a.Timestamp))
	}

	if err := t.Print(); err != nil {
		return err
	}

	if !c.Bool("post") {
		return nil
	}

	n, err := e.notifier()
	if err != nil {
		return err
	}

	for _, a := range aa {
		c.Startf("posting <id>%s</id>", a.Rule)

		if err := n.Send(context.Background(), a); err != nil {
			return err
		}

		c.OK()
	}

	return nil
}

func severity(s string) string {
	if attr, ok := severityColors[s]; ok {
		return color.New(attr).Sprint(s)
	}

	return s
}
