package cli

import (
	"os"

	"github.com/convox/stdcli"
	"github.com/trailwatch/trailwatch/pkg/cloudtrail"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

func init() {
	register("replay", "run rules against a local digest file", Replay, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{flagRules, flagPost},
		Usage:    "<file>",
		Validate: stdcli.Args(1),
	})
}

func Replay(e *Engine, c *stdcli.Context) error {
	rs, err := loadRules(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := cloudtrail.Decode(f)
	if err != nil {
		return err
	}

	aa := []*structs.Alert{}

	for _, rec := range d.Records {
		for _, rule := range rs.Match(rec) {
			aa = append(aa, rule.Alert(rec))
		}
	}

	return report(e, c, aa)
}
