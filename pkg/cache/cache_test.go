package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	err := Set("TestSet", "test", map[string]interface{}{
		"string": "empty",
		"int":    1,
	}, time.Minute)
	require.NoError(t, err)
}

func TestGet(t *testing.T) {
	value := map[string]interface{}{
		"string": "empty",
		"int":    1,
	}

	err := Set("TestGet", "test1", value, time.Minute)
	require.NoError(t, err)

	data := Get("TestGet", "test1")
	require.NotNil(t, data)
	require.Equal(t, value, data)

	data = Get("TestGet", "test2")
	require.Nil(t, data)
}

func TestGetExpired(t *testing.T) {
	err := Set("TestGetExpired", "test1", "value", 20*time.Millisecond)
	require.NoError(t, err)

	require.NotNil(t, Get("TestGetExpired", "test1"))

	time.Sleep(30 * time.Millisecond)

	require.Nil(t, Get("TestGetExpired", "test1"))
}

func TestClear(t *testing.T) {
	err := Set("TestClear", "test1", "value", time.Minute)
	require.NoError(t, err)

	require.NotNil(t, Get("TestClear", "test1"))

	err = Clear("TestClear", "test1")
	require.NoError(t, err)

	require.Nil(t, Get("TestClear", "test1"))
}

func TestStructKeys(t *testing.T) {
	type key struct {
		Rule    string
		EventID string
	}

	err := Set("TestStructKeys", key{"a", "1"}, true, time.Minute)
	require.NoError(t, err)

	require.NotNil(t, Get("TestStructKeys", key{"a", "1"}))
	require.Nil(t, Get("TestStructKeys", key{"a", "2"}))
	require.Nil(t, Get("TestStructKeys", key{"b", "1"}))
}
