package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	in := time.Date(2025, 3, 15, 14, 30, 45, 123, loc)
	got := StartOfDay(in)

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestStartOfDay_AlreadyMidnight(t *testing.T) {
	in := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, in, StartOfDay(in))
}
