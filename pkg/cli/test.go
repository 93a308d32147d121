package cli

import (
	"context"

	"github.com/convox/stdcli"
	"github.com/trailwatch/trailwatch/pkg/structs"
)

func init() {
	register("test", "send a synthetic alert", Test, stdcli.CommandOptions{
		Flags:    []stdcli.Flag{},
		Validate: stdcli.Args(0),
	})
}

func Test(e *Engine, c *stdcli.Context) error {
	n, err := e.notifier()
	if err != nil {
		return err
	}

	a := structs.NewAlert("test")

	a.Severity = "info"
	a.Title = "Resources"
	a.Message = "Test alert."
	a.User = "trailwatch"

	c.Startf("sending test alert")

	if err := n.Send(context.Background(), a); err != nil {
		return err
	}

	return c.OK(a.Id)
}
