package core

import (
	"math/rand/v2"
	"time"

	"github.com/huangsam/tempdash/schema"
)

// Generator produces one synthetic reading per call.
type Generator interface {
	Generate() schema.Reading
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// RandomGenerator draws uniform temperatures in [Min, Max] from an injected source.
type RandomGenerator struct {
	src   *rand.Rand
	clock Clock
	Min   float64
	Max   float64
}

// NewRandomGenerator builds a generator from an explicit random source and clock.
// A nil src or clock falls back to an unseeded source or time.Now.
func NewRandomGenerator(src *rand.Rand, clock Clock, minTemp, maxTemp float64) *RandomGenerator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if clock == nil {
		clock = time.Now
	}
	return &RandomGenerator{src: src, clock: clock, Min: minTemp, Max: maxTemp}
}

// NewSeededGenerator returns a generator over [minTemp, maxTemp] whose sequence
// is fixed by seed. A zero seed yields an unseeded source.
func NewSeededGenerator(seed int64, minTemp, maxTemp float64) *RandomGenerator {
	return NewRandomGenerator(NewSource(seed), time.Now, minTemp, maxTemp)
}

// SteppedClock returns a clock that yields start on its first call and moves
// forward by step on every call after that. It is not safe for concurrent use.
func SteppedClock(start time.Time, step time.Duration) Clock {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}

// NewSource returns a PCG source for seed, or a randomly seeded one when seed is zero.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Generate returns a reading with a uniform value in [Min, Max] rounded to one
// decimal place, stamped with the clock's current time.
func (g *RandomGenerator) Generate() schema.Reading {
	v := g.Min + g.src.Float64()*(g.Max-g.Min)
	return schema.NewReading(v, g.clock())
}
