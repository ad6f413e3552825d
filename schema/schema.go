// Package schema has the models shared by every part of tempdash.
package schema

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Reading is one synthetic temperature sample. It is immutable once created.
type Reading struct {
	Temp      float64   `json:"temp"`      // Fahrenheit, one decimal place
	Time      time.Time `json:"-"`         // Wall-clock time of the sample
	Timestamp string    `json:"timestamp"` // Time formatted with TimestampLayout
}

// NewReading builds a Reading, rounding temp to one decimal place. Time keeps
// full precision so sub-second ticks stay ordered; Timestamp shows whole seconds.
func NewReading(temp float64, t time.Time) Reading {
	return Reading{
		Temp:      RoundTenth(temp),
		Time:      t,
		Timestamp: t.Format(TimestampLayout),
	}
}

// TempString returns the display text for the reading value, e.g. "55.3 F".
func (r Reading) TempString() string {
	return fmt.Sprintf("%.1f %s", r.Temp, TempUnit)
}

// RoundTenth rounds v to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Snapshot is the tick-scoped view of the history buffer. Every consumer
// notified for the same tick receives the same Snapshot.
type Snapshot struct {
	Tick     int64     `json:"tick"`     // 1-based tick counter
	Readings []Reading `json:"readings"` // Oldest first
	Latest   Reading   `json:"latest"`   // Reading generated on this tick
}

// Len returns the number of readings in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Readings)
}

// Empty reports whether the snapshot holds no readings.
func (s Snapshot) Empty() bool {
	return len(s.Readings) == 0
}

// Values returns the reading temperatures in chronological order.
func (s Snapshot) Values() []float64 {
	values := make([]float64, len(s.Readings))
	for i, r := range s.Readings {
		values[i] = r.Temp
	}
	return values
}

// Times returns the reading times in chronological order.
func (s Snapshot) Times() []time.Time {
	times := make([]time.Time, len(s.Readings))
	for i, r := range s.Readings {
		times[i] = r.Time
	}
	return times
}

// Equal reports whether two snapshots carry the same tick and readings.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Tick == other.Tick && s.Latest == other.Latest && slices.Equal(s.Readings, other.Readings)
}
