package cli

import (
	"strings"

	"github.com/convox/stdcli"
)

func init() {
	register("rules", "validate and list the ruleset", RulesList, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagRules},
		Validate: stdcli.Args(0),
	})
}

func RulesList(e *Engine, c *stdcli.Context) error {
	rs, err := loadRules(c)
	if err != nil {
		return err
	}

	t := c.Table("NAME", "SEVERITY", "EVENTS", "ERROR CODES", "DESCRIPTION")

	for _, r := range rs {
		t.AddRow(r.Name, severity(r.Severity), strings.Join(r.Events, ","), strings.Join(r.ErrorCodes, ","), r.Description)
	}

	return t.Print()
}
