package replay

import "github.com/younwookim/neonrun/internal/application/system"

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

// FrameInput records the intent and frame time of a single tick
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	DT float64 `json:"dt"`           // Seconds since the previous tick
	L  bool    `json:"l,omitempty"`  // MoveLeft
	R  bool    `json:"r,omitempty"`  // MoveRight
	JP bool    `json:"jp,omitempty"` // JumpPressed
	AP bool    `json:"ap,omitempty"` // AttackPressed
	SP bool    `json:"sp,omitempty"` // SpecialPressed
	DF bool    `json:"df,omitempty"` // DepthForward
	DB bool    `json:"db,omitempty"` // DepthBack
}

// Intent converts the frame back into a tick intent.
func (f FrameInput) Intent() system.Intent {
	return system.Intent{
		MoveLeft:       f.L,
		MoveRight:      f.R,
		JumpPressed:    f.JP,
		AttackPressed:  f.AP,
		SpecialPressed: f.SP,
		DepthForward:   f.DF,
		DepthBack:      f.DB,
	}
}

func frameOf(n int, in system.Intent, dt float64) FrameInput {
	return FrameInput{
		F:  n,
		DT: dt,
		L:  in.MoveLeft,
		R:  in.MoveRight,
		JP: in.JumpPressed,
		AP: in.AttackPressed,
		SP: in.SpecialPressed,
		DF: in.DepthForward,
		DB: in.DepthBack,
	}
}

// ReplayData contains all data needed to replay a run: the pack is
// regenerated from Seed and Stages, then Frames are fed in order.
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stages    int          `json:"stages"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
