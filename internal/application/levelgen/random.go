package levelgen

//go:generate mockgen -destination=mock/mock_source.go -package=levelgenmock github.com/younwookim/neonrun/internal/application/levelgen Source

import "math/rand"

// Source is the random stream generation draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// StageSeed derives the seed of stage index within a pack.
func StageSeed(seed int64, index int) int64 {
	return seed + int64(index)*7919
}

// Random wraps a Source with the range helpers the generator needs.
type Random struct {
	src Source
}

func NewRandom(src Source) *Random {
	return &Random{src: src}
}

func (r *Random) Float64() float64 {
	return r.src.Float64()
}

// Range returns a value in [lo, hi). An empty range returns lo without drawing.
func (r *Random) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.src.Float64()
}

// IntRange returns an integer in [lo, hi].
func (r *Random) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Chance returns true with probability p.
func (r *Random) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.src.Float64() < p
}

func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.src.Shuffle(n, swap)
}

// Weighted picks an index with probability proportional to its weight.
// Returns -1 when no weight is positive.
func (r *Random) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += max(0, w)
	}
	if total <= 0 {
		return -1
	}
	pick := r.src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if pick < w {
			return i
		}
		pick -= w
	}
	return last
}
