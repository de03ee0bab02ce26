package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	// Tuesday 2026-09-01.
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestMatchCron(t *testing.T) {
	cases := []struct {
		expr string
		when time.Time
		want bool
	}{
		{"* * * * *", at(10, 30), true},
		{"30 10 * * *", at(10, 30), true},
		{"30 10 * * *", at(10, 31), false},
		{"*/15 * * * *", at(8, 45), true},
		{"*/15 * * * *", at(8, 50), false},
		{"0 9-17 * * *", at(12, 0), true},
		{"0 9-17 * * *", at(18, 0), false},
		{"0 0 1 9 *", at(0, 0), true},
		{"0 0 * * 2", at(0, 0), true},  // Tuesday
		{"0 0 * * 3", at(0, 0), false}, // not Wednesday
		{"bad expr", at(0, 0), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, matchCron(c.expr, c.when), "expr %q at %s", c.expr, c.when)
	}
}

func TestMatchField(t *testing.T) {
	assert.True(t, matchField("*", 42))
	assert.True(t, matchField("*/5", 10))
	assert.False(t, matchField("*/5", 11))
	assert.True(t, matchField("3-7", 5))
	assert.False(t, matchField("3-7", 8))
	assert.True(t, matchField("12", 12))
	assert.False(t, matchField("12", 13))
}
