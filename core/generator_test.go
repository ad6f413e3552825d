package core

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestRandomGenerator_RangeAndPrecision(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	gen := NewRandomGenerator(rand.New(rand.NewPCG(1, 2)), fixedClock(now), schema.DefaultMinTemp, schema.DefaultMaxTemp)

	for range 5000 {
		r := gen.Generate()
		assert.GreaterOrEqual(t, r.Temp, 50.0)
		assert.LessOrEqual(t, r.Temp, 60.0)
		// One decimal place: ten times the value is a whole number.
		assert.InDelta(t, math.Round(r.Temp*10), r.Temp*10, 1e-9)
		assert.Equal(t, now, r.Time)
		assert.Equal(t, "2024-06-15 10:30:00", r.Timestamp)
	}
}

func TestRandomGenerator_TimestampDropsFraction(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 5, 987654321, time.UTC)
	gen := NewRandomGenerator(nil, fixedClock(now), 50, 60)

	r := gen.Generate()
	assert.Equal(t, "2024-06-15 10:30:05", r.Timestamp)
	assert.Equal(t, now, r.Time, "Time keeps sub-second precision")
}

// TestRandomGenerator_SubSecondTicksStayOrdered covers intervals below one
// second, where readings share a Timestamp but not a Time.
func TestRandomGenerator_SubSecondTicksStayOrdered(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 30, 5, 0, time.UTC)
	gen := NewRandomGenerator(nil, SteppedClock(start, 10*time.Millisecond), 50, 60)

	prev := gen.Generate()
	for range 5 {
		next := gen.Generate()
		assert.True(t, next.Time.After(prev.Time))
		assert.Equal(t, prev.Timestamp, next.Timestamp)
		prev = next
	}
}

func TestSteppedClock(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	clock := SteppedClock(start, 3*time.Second)

	assert.Equal(t, start, clock())
	assert.Equal(t, start.Add(3*time.Second), clock())
	assert.Equal(t, start.Add(6*time.Second), clock())
}

func TestNewSeededGenerator_Reproducible(t *testing.T) {
	a := NewSeededGenerator(42, 50, 60)
	b := NewSeededGenerator(42, 50, 60)
	c := NewSeededGenerator(43, 50, 60)

	var seqA, seqB, seqC []float64
	for range 20 {
		seqA = append(seqA, a.Generate().Temp)
		seqB = append(seqB, b.Generate().Temp)
		seqC = append(seqC, c.Generate().Temp)
	}
	assert.Equal(t, seqA, seqB)
	assert.NotEqual(t, seqA, seqC)
}

func TestNewRandomGenerator_Defaults(t *testing.T) {
	gen := NewRandomGenerator(nil, nil, 50, 60)
	before := time.Now()
	r := gen.Generate()
	assert.False(t, r.Time.Before(before))
	assert.InDelta(t, 55, r.Temp, 5)
}
