package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateStageClear, "StageClear"},
		{StateGameOver, "GameOver"},
		{StateVictory, "Victory"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameState_Predicates(t *testing.T) {
	tests := []struct {
		state   GameState
		ticking bool
		final   bool
	}{
		{StatePlaying, true, false},
		{StatePaused, false, false},
		{StateStageClear, false, false},
		{StateGameOver, false, true},
		{StateVictory, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.ticking, tt.state.Ticking())
			assert.Equal(t, tt.final, tt.state.Final())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, GameState(0), StatePlaying)
	assert.Equal(t, GameState(1), StatePaused)
	assert.Equal(t, GameState(2), StateStageClear)
	assert.Equal(t, GameState(3), StateGameOver)
	assert.Equal(t, GameState(4), StateVictory)
}
