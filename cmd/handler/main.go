package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/convox/logger"
	"github.com/trailwatch/trailwatch/pkg/processor"
)

func main() {
	log := logger.New("ns=trailwatch.handler")

	p, err := processor.FromEnv()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	lambda.Start(p.Process)
}
