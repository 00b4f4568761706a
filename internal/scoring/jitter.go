package scoring

import (
	"math/rand/v2"
	"sync"
	"time"
)

// JitterBand bounds the perturbation applied to heuristic scores.
const JitterBand = 5.0

// Jitter supplies the random perturbation added to each heuristic score.
// Offsets are within [-JitterBand, +JitterBand].
type Jitter interface {
	Offset() float64
}

// NoJitter disables perturbation.
type NoJitter struct{}

func (NoJitter) Offset() float64 { return 0 }

// UniformJitter draws offsets uniformly from a seedable PCG source.
type UniformJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformJitter seeds the source with seed, or with the clock when seed is 0.
func NewUniformJitter(seed uint64) *UniformJitter {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &UniformJitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (j *UniformJitter) Offset() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.rng.Float64()*2*JitterBand - JitterBand
}
