package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Intersects(t *testing.T) {
	base := NewRect(100, 100, 50, 20)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(120, 110, 50, 50), true},
		{"touching right edge", NewRect(150, 100, 10, 20), false},
		{"touching top edge", NewRect(100, 80, 50, 20), false},
		{"contained", NewRect(110, 105, 5, 5), true},
		{"far away", NewRect(400, 400, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, Vec{25, 40}, r.Center())
	assert.Equal(t, NewRect(15, 18, 30, 40), r.Move(Vec{5, -2}))
}

func TestRect_InflateDeflate(t *testing.T) {
	r := NewRect(10, 10, 20, 10)

	assert.Equal(t, NewRect(5, 8, 30, 14), r.Inflate(5, 2))
	assert.Equal(t, NewRect(12, 12, 16, 6), r.Deflate(2))

	// Over-deflation collapses to a zero-size rect at the center
	collapsed := r.Deflate(50)
	assert.Equal(t, 0.0, collapsed.W)
	assert.Equal(t, 0.0, collapsed.H)
	assert.False(t, collapsed.Intersects(r))
}

func TestRect_Union(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, -5, 5, 5)

	assert.Equal(t, NewRect(0, -5, 25, 15), a.Union(b))
}

func TestRect_AxisOverlap(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	assert.True(t, a.OverlapsX(NewRect(5, 100, 10, 10)))
	assert.False(t, a.OverlapsX(NewRect(10, 0, 10, 10)))
	assert.True(t, a.OverlapsY(NewRect(100, 9, 1, 1)))
	assert.False(t, a.OverlapsY(NewRect(0, 10, 10, 10)))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 3.0, Clamp(7, 0, 3))
	assert.Equal(t, 0.0, Clamp(-1, 0, 3))
	assert.Equal(t, 4.0, Approach(3, 10, 1))
	assert.Equal(t, 10.0, Approach(9.5, 10, 1))
	assert.Equal(t, 2.0, Approach(3, -10, 1))
	assert.Equal(t, -1.0, Sign(-0.2))
	assert.Equal(t, 0.0, Sign(0))
	assert.Equal(t, 2.5, Abs(-2.5))
}
