package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	_, offset := time.Now().In(Location("Not/AZone")).Zone()

	assert.Equal(t, 8*60*60, offset)
	assert.False(t, IsValid(""))
}

func TestClockUsesZone(t *testing.T) {
	now := Clock("UTC")()
	_, offset := now.Zone()

	assert.Equal(t, 0, offset)
}
