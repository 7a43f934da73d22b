package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/neonrun/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %q, want %q", data.Version, FormatVersion)
	}

	return &data, nil
}

// Next returns the intent and frame time for the current frame and advances
func (r *Replayer) Next() (system.Intent, float64, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.Intent{}, 0, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Intent(), fi.DT, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Stages returns the number of stages in the recorded pack
func (r *Replayer) Stages() int {
	return r.data.Stages
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
