package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/neonrun/internal/domain/geom"
)

func TestHasAndCount(t *testing.T) {
	events := []Event{
		Score(100, geom.Vec{}),
		At(Jumped, geom.Vec{X: 1}),
		Score(50, geom.Vec{}),
	}

	assert.True(t, Has(events, ScoreDelta))
	assert.False(t, Has(events, PlayerDied))
	assert.Equal(t, 2, Count(events, ScoreDelta))
	assert.Equal(t, 0, Count(nil, ScoreDelta))
}

func TestDied(t *testing.T) {
	e := Died(CauseBoss, geom.Vec{X: 3, Y: 4})
	assert.Equal(t, PlayerDied, e.Kind)
	assert.Equal(t, "boss", e.Cause.String())
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got      string
		expected string
	}{
		{PlayerDied.String(), "player_died"},
		{StageCleared.String(), "stage_cleared"},
		{LifeLost.String(), "life_lost"},
		{Kind(999).String(), "unknown"},
		{CauseFall.String(), "fall"},
		{CauseEnemy.String(), "enemy"},
		{CauseProjectile.String(), "projectile"},
		{CauseNone.String(), "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
