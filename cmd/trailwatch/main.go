package main

import (
	"os"

	"github.com/trailwatch/trailwatch/pkg/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.New("trailwatch", version).Execute(os.Args[1:]))
}
