package replay

import (
	"github.com/younwookim/neonrun/internal/application/system"
	"github.com/younwookim/neonrun/internal/domain/event"
)

// Ticker is the simulation a replay drives, typically a *run.Run.
type Ticker interface {
	Tick(intent system.Intent, dt float64) []event.Event
	Finished() bool
}

// Summary counts what happened during a playback.
type Summary struct {
	Frames   int
	Events   map[event.Kind]int
	Finished bool // The run ended before the recording did
}

// Play feeds every recorded frame into t until the recording ends or the run
// finishes. onEvent, if not nil, sees each event with its frame number.
func Play(t Ticker, rp *Replayer, onEvent func(frame int, e event.Event)) Summary {
	sum := Summary{Events: make(map[event.Kind]int)}
	for !t.Finished() {
		intent, dt, ok := rp.Next()
		if !ok {
			break
		}
		for _, e := range t.Tick(intent, dt) {
			sum.Events[e.Kind]++
			if onEvent != nil {
				onEvent(rp.CurrentFrame()-1, e)
			}
		}
		sum.Frames++
	}
	sum.Finished = t.Finished()
	return sum
}
