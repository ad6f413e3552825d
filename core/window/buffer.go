// Package window holds the fixed-capacity history of recent readings.
package window

import (
	"github.com/gammazero/deque"
	"github.com/huangsam/tempdash/schema"
)

// Buffer is a fixed-capacity FIFO window of readings. Appending past
// capacity evicts the single oldest reading.
//
// A Buffer has exactly one writer, the scheduler that owns it. It is not
// safe for concurrent use.
type Buffer struct {
	q        deque.Deque[schema.Reading]
	capacity int
}

// New creates an empty Buffer holding at most capacity readings.
// A non-positive capacity falls back to schema.DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = schema.DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Append inserts r at the logical end, evicting the oldest reading when full.
func (b *Buffer) Append(r schema.Reading) {
	b.q.PushBack(r)
	for b.q.Len() > b.capacity {
		b.q.PopFront()
	}
}

// Snapshot returns a copy of the current contents, oldest first.
func (b *Buffer) Snapshot() []schema.Reading {
	out := make([]schema.Reading, b.q.Len())
	for i := range out {
		out[i] = b.q.At(i)
	}
	return out
}

// Len returns the number of readings held.
func (b *Buffer) Len() int {
	return b.q.Len()
}

// Cap returns the configured capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Newest returns the most recent reading and true, or false if the buffer is empty.
func (b *Buffer) Newest() (schema.Reading, bool) {
	if b.q.Len() == 0 {
		return schema.Reading{}, false
	}
	return b.q.Back(), true
}
