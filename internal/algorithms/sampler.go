package algorithms

import (
	"math/rand"
	"sync"

	"image-augmentation-visualizer/internal/core"
)

// Sampler draws the random values of stochastic augmentations. It is safe
// for use by overlapping runs.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Uniform draws from [r.Min, r.Max]
func (s *Sampler) Uniform(r core.Range) float64 {
	if r.Degenerate() {
		return r.Min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// Fill draws len(dst) values from [r.Min, r.Max] under a single lock
func (s *Sampler) Fill(r core.Range, dst []float64) {
	if r.Degenerate() {
		for i := range dst {
			dst[i] = r.Min
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range dst {
		dst[i] = r.Min + s.rng.Float64()*(r.Max-r.Min)
	}
}

// FillNormal draws len(dst) values from N(mean, stddev²) under a single lock
func (s *Sampler) FillNormal(dst []float32, mean, stddev float64) {
	if stddev == 0 {
		for i := range dst {
			dst[i] = float32(mean)
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range dst {
		dst[i] = float32(mean + s.rng.NormFloat64()*stddev)
	}
}

// IntBetween draws from [lo, hi]
func (s *Sampler) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Sampler) Perm(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Perm(n)
}
