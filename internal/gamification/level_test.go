package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.xp), "xp=%d", tt.xp)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		xp  int
		pct float64
	}{
		{0, 0},
		{10, 10},
		{99, 99},
		{100, 0},
		{150, 50},
		{250, 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.pct, ProgressPercent(tt.xp), "xp=%d", tt.xp)
	}
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPForNextLevel(0))
	assert.Equal(t, 100, XPForNextLevel(99))
	assert.Equal(t, 200, XPForNextLevel(100))
	assert.Equal(t, 300, XPForNextLevel(250))
}

func TestLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 1000; xp++ {
		level := LevelFor(xp)
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}
