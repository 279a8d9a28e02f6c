package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_ReturnsUTC(t *testing.T) {
	now := System().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestFixed_Advance(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	c := &Fixed{T: time.Date(2026, 10, 19, 14, 0, 0, 0, loc)}
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 1, 30, 0, time.UTC), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())
}
