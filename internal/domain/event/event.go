// Package event defines the discrete outcomes a simulation tick reports to its caller.
package event

import "github.com/younwookim/neonrun/internal/domain/geom"

// Kind identifies an event
type Kind int

const (
	PlayerDied Kind = iota
	StageCleared
	ScoreDelta
	LifeLost
	GameOver
	Victory
	Jumped
	DoubleJumped
	Landed
	Bounced
	Collected
	EnemyStomped
	EnemyKilled
	BossHit
	BossDefeated
	SwordFired
	ShieldRaised
	GoalLocked
)

var kindNames = map[Kind]string{
	PlayerDied:   "player_died",
	StageCleared: "stage_cleared",
	ScoreDelta:   "score_delta",
	LifeLost:     "life_lost",
	GameOver:     "game_over",
	Victory:      "victory",
	Jumped:       "jumped",
	DoubleJumped: "double_jumped",
	Landed:       "landed",
	Bounced:      "bounced",
	Collected:    "collected",
	EnemyStomped: "enemy_stomped",
	EnemyKilled:  "enemy_killed",
	BossHit:      "boss_hit",
	BossDefeated: "boss_defeated",
	SwordFired:   "sword_fired",
	ShieldRaised: "shield_raised",
	GoalLocked:   "goal_locked",
}

// String returns the string representation of the kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Cause tags why the player died
type Cause int

const (
	CauseNone Cause = iota
	CauseFall
	CauseEnemy
	CauseProjectile
	CauseBoss
)

// String returns the string representation of the cause
func (c Cause) String() string {
	switch c {
	case CauseFall:
		return "fall"
	case CauseEnemy:
		return "enemy"
	case CauseProjectile:
		return "projectile"
	case CauseBoss:
		return "boss"
	default:
		return "none"
	}
}

// Event is a single outcome. Only the fields relevant to Kind are set.
type Event struct {
	Kind   Kind
	Cause  Cause
	Amount int      // ScoreDelta points, LifeLost lives left
	Pos    geom.Vec // Where it happened, for effects
	Item   string   // Collected pickup kind
	Final  bool     // StageCleared on the last stage
}

// Died returns a PlayerDied event.
func Died(cause Cause, pos geom.Vec) Event {
	return Event{Kind: PlayerDied, Cause: cause, Pos: pos}
}

// Score returns a ScoreDelta event.
func Score(amount int, pos geom.Vec) Event {
	return Event{Kind: ScoreDelta, Amount: amount, Pos: pos}
}

// At returns an event of kind k at pos.
func At(k Kind, pos geom.Vec) Event {
	return Event{Kind: k, Pos: pos}
}

// Has reports whether events contains one of kind k.
func Has(events []Event, k Kind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Count returns the number of events of kind k.
func Count(events []Event, k Kind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
