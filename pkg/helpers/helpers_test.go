package helpers_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/require"
	"github.com/trailwatch/trailwatch/pkg/helpers"
)

func TestAwsErrorCode(t *testing.T) {
	require.Equal(t, "NoSuchKey", helpers.AwsErrorCode(awserr.New("NoSuchKey", "no such key", nil)))
	require.Equal(t, "", helpers.AwsErrorCode(fmt.Errorf("plain")))
	require.Equal(t, "", helpers.AwsErrorCode(nil))
}

func TestCoalesceString(t *testing.T) {
	require.Equal(t, "a", helpers.CoalesceString("", "a", "b"))
	require.Equal(t, "", helpers.CoalesceString("", ""))
}

func TestEnvDefault(t *testing.T) {
	os.Setenv("TEST_ENV_DEFAULT", "")
	require.Equal(t, "fallback", helpers.EnvDefault("TEST_ENV_DEFAULT", "fallback"))

	os.Setenv("TEST_ENV_DEFAULT", "set")
	defer os.Unsetenv("TEST_ENV_DEFAULT")
	require.Equal(t, "set", helpers.EnvDefault("TEST_ENV_DEFAULT", "fallback"))
}

func TestRetry(t *testing.T) {
	testData := []struct {
		errUntil  int
		expectErr bool
	}{
		{
			errUntil:  8,
			expectErr: false,
		},
		{
			errUntil:  0,
			expectErr: false,
		},
		{
			errUntil:  30,
			expectErr: true,
		},
	}

	for _, td := range testData {
		cnt := 0
		err := helpers.Retry(10, 1*time.Millisecond, func() error {
			if cnt >= td.errUntil {
				return nil
			}
			cnt++
			return fmt.Errorf("error")
		})
		if td.expectErr {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
}

func TestDuration(t *testing.T) {
	now := time.Now().UTC()
	testData := []struct {
		start, end time.Time
		expect     string
	}{
		{
			start:  now,
			end:    now,
			expect: "0s",
		},
		{
			start:  now,
			end:    now.Add(1*time.Hour + 31*time.Minute + 17*time.Second),
			expect: "91m17s",
		},
		{
			start:  now,
			end:    time.Time{},
			expect: "",
		},
	}

	for _, td := range testData {
		require.Equal(t, td.expect, helpers.Duration(td.start, td.end))
	}
}

func TestAgo(t *testing.T) {
	require.Equal(t, "", helpers.Ago(time.Time{}))
	require.NotEqual(t, "", helpers.Ago(time.Now().Add(-2*time.Hour)))
}
