package system

// Intent is the per-tick snapshot of logical player input.
// The *Pressed fields are edge-triggered: true only on the tick the key went down.
type Intent struct {
	MoveLeft       bool
	MoveRight      bool
	JumpPressed    bool
	AttackPressed  bool
	SpecialPressed bool
	DepthForward   bool // Planar mode: away from the camera (up the screen)
	DepthBack      bool
}

// Direction returns -1, 0 or 1 for horizontal movement.
// Holding both directions cancels out.
func (i Intent) Direction() int {
	d := 0
	if i.MoveLeft {
		d--
	}
	if i.MoveRight {
		d++
	}
	return d
}

// Depth returns -1 (forward), 0 or 1 (back) for planar movement.
func (i Intent) Depth() int {
	d := 0
	if i.DepthForward {
		d--
	}
	if i.DepthBack {
		d++
	}
	return d
}

// IsZero reports whether no input is active.
func (i Intent) IsZero() bool {
	return i == Intent{}
}
