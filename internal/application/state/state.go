package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateStageClear
	StateGameOver
	StateVictory
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStageClear:
		return "StageClear"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances in this state.
func (s GameState) Ticking() bool {
	return s == StatePlaying
}

// Final reports whether the run is over in this state.
func (s GameState) Final() bool {
	return s == StateGameOver || s == StateVictory
}
