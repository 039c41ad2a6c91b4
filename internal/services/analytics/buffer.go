package analytics

import "VolSentry/internal/domain/models"

// RollingBuffer is a fixed-capacity ring of trades in arrival order.
// Appending beyond capacity evicts the oldest entry. It is owned
// exclusively by the ingestion loop and is not safe for concurrent use.
type RollingBuffer struct {
	samples []models.Trade
	head    int // index of the oldest sample
	size    int
}

// NewRollingBuffer creates a buffer holding at most capacity trades.
func NewRollingBuffer(capacity int) *RollingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RollingBuffer{samples: make([]models.Trade, capacity)}
}

// Append adds a trade, evicting the oldest when the buffer is full.
func (b *RollingBuffer) Append(t models.Trade) {
	tail := (b.head + b.size) % len(b.samples)
	b.samples[tail] = t
	if b.size < len(b.samples) {
		b.size++
		return
	}
	b.head = (b.head + 1) % len(b.samples)
}

// Len returns the current number of stored trades.
func (b *RollingBuffer) Len() int { return b.size }

// Cap returns the buffer capacity.
func (b *RollingBuffer) Cap() int { return len(b.samples) }

// LastN returns the n most recent trades in arrival order, or fewer when
// the buffer holds less than n.
func (b *RollingBuffer) LastN(n int) []models.Trade {
	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]models.Trade, n)
	start := b.head + b.size - n
	for i := 0; i < n; i++ {
		out[i] = b.samples[(start+i)%len(b.samples)]
	}
	return out
}

// Latest returns the most recently appended trade, or false when empty.
func (b *RollingBuffer) Latest() (models.Trade, bool) {
	if b.size == 0 {
		return models.Trade{}, false
	}
	return b.samples[(b.head+b.size-1)%len(b.samples)], true
}
