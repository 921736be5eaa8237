package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("RELAY_TEST_STRING", "value")

	assert.Equal(t, "value", GetString("RELAY_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("RELAY_TEST_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("RELAY_TEST_INT", "42")
	t.Setenv("RELAY_TEST_BAD_INT", "not-a-number")

	assert.Equal(t, 42, GetInt("RELAY_TEST_INT", 7))
	assert.Equal(t, 7, GetInt("RELAY_TEST_BAD_INT", 7))
	assert.Equal(t, 7, GetInt("RELAY_TEST_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("RELAY_TEST_BOOL", "true")

	assert.True(t, GetBool("RELAY_TEST_BOOL", false))
	assert.False(t, GetBool("RELAY_TEST_MISSING", false))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("RELAY_TEST_DURATION", "90s")

	assert.Equal(t, 90*time.Second, GetDuration("RELAY_TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("RELAY_TEST_MISSING", time.Minute))
}
