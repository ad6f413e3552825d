package window

import (
	"testing"
	"time"

	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func reading(i int) schema.Reading {
	return schema.NewReading(50+float64(i)/10, base.Add(time.Duration(i)*time.Second))
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, schema.DefaultCapacity, New(0).Cap())
	assert.Equal(t, schema.DefaultCapacity, New(-3).Cap())
	assert.Equal(t, 4, New(4).Cap())
}

func TestBuffer_LengthNeverExceedsCapacity(t *testing.T) {
	b := New(5)
	for i := range 23 {
		b.Append(reading(i))
		assert.LessOrEqual(t, b.Len(), 5)
		assert.Equal(t, min(i+1, 5), b.Len())
	}
}

func TestBuffer_KeepsLastNInOrder(t *testing.T) {
	const capacity = 10
	for _, k := range []int{0, 1, 3, 10, 17} {
		b := New(capacity)
		for i := range capacity + k {
			b.Append(reading(i))
		}

		got := b.Snapshot()
		require.Len(t, got, capacity, "k=%d", k)
		for j, r := range got {
			assert.Equal(t, reading(k+j), r, "k=%d index=%d", k, j)
		}
	}
}

func TestBuffer_StrictFIFOEviction(t *testing.T) {
	b := New(3)
	b.Append(reading(0))
	b.Append(reading(1))
	b.Append(reading(2))

	before := b.Snapshot()
	b.Append(reading(3))
	after := b.Snapshot()

	// Only the oldest entry is gone; the rest shift left unchanged.
	assert.Equal(t, before[1:], after[:2])
	assert.Equal(t, reading(3), after[2])
	assert.NotContains(t, after, reading(0))
}

func TestBuffer_SnapshotIsStableAndDetached(t *testing.T) {
	b := New(3)
	b.Append(reading(0))
	b.Append(reading(1))

	first := b.Snapshot()
	second := b.Snapshot()
	assert.Equal(t, first, second)

	// Mutating a returned snapshot must not leak into the buffer.
	first[0] = reading(9)
	assert.Equal(t, second, b.Snapshot())

	// A later append must not alter an earlier snapshot.
	b.Append(reading(2))
	b.Append(reading(3))
	assert.Equal(t, []schema.Reading{reading(0), reading(1)}, second)
}

func TestBuffer_EmptySnapshot(t *testing.T) {
	b := New(3)
	assert.Empty(t, b.Snapshot())
	assert.Equal(t, 0, b.Len())

	_, ok := b.Newest()
	assert.False(t, ok)
}

func TestBuffer_Newest(t *testing.T) {
	b := New(2)
	for i := range 4 {
		b.Append(reading(i))
		newest, ok := b.Newest()
		require.True(t, ok)
		assert.Equal(t, reading(i), newest)
	}
	assert.Equal(t, []schema.Reading{reading(2), reading(3)}, b.Snapshot())
}
