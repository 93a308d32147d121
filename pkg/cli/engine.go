package cli

import (
	"io"

	"github.com/convox/stdcli"
	"github.com/trailwatch/trailwatch/pkg/notify"
	"github.com/trailwatch/trailwatch/provider/aws"
)

type HandlerFunc func(*Engine, *stdcli.Context) error

// Storage is the provider surface the CLI needs.
type Storage interface {
	ObjectFetch(bucket, key string) (io.ReadCloser, error)
	ObjectList(bucket, prefix string) ([]string, error)
}

type Engine struct {
	*stdcli.Engine

	// injectable for tests
	Provider Storage
	Notifier notify.Notifier
}

type command struct {
	Command     string
	Description string
	Handler     HandlerFunc
	Opts        stdcli.CommandOptions
}

var commands = []command{}

func New(name, version string) *Engine {
	e := &Engine{
		Engine: stdcli.New(name, version),
	}

	for _, c := range commands {
		cc := c
		e.Engine.Command(cc.Command, cc.Description, func(ctx *stdcli.Context) error {
			return cc.Handler(e, ctx)
		}, cc.Opts)
	}

	return e
}

func register(cmd, description string, fn HandlerFunc, opts stdcli.CommandOptions) {
	commands = append(commands, command{
		Command:     cmd,
		Description: description,
		Handler:     fn,
		Opts:        opts,
	})
}

func (e *Engine) storage() Storage {
	if e.Provider != nil {
		return e.Provider
	}

	return aws.FromEnv()
}
