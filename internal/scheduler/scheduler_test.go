package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourFromEnv(t *testing.T) {
	assert.Equal(t, 8, hourFromEnv("NOTIFICATION_START_HOUR", 8))

	t.Setenv("NOTIFICATION_START_HOUR", "10")
	assert.Equal(t, 10, hourFromEnv("NOTIFICATION_START_HOUR", 8))

	t.Setenv("NOTIFICATION_START_HOUR", "25")
	assert.Equal(t, 8, hourFromEnv("NOTIFICATION_START_HOUR", 8), "out-of-range values fall back")

	t.Setenv("NOTIFICATION_START_HOUR", "not-a-number")
	assert.Equal(t, 8, hourFromEnv("NOTIFICATION_START_HOUR", 8))
}
