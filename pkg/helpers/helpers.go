package helpers

import (
	"math/rand"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
)

func AwsErrorCode(err error) string {
	if ae, ok := err.(awserr.Error); ok {
		return ae.Code()
	}

	return ""
}

func CoalesceString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func Retry(times int, interval time.Duration, fn func() error) error {
	i := 0

	for {
		err := fn()
		if err == nil {
			return nil
		}

		// add 20% jitter
		time.Sleep(interval + time.Duration(rand.Intn(int(interval/20))))

		i++

		if i > times {
			return err
		}
	}
}
