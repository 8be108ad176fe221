// Package burst holds the fixed-capacity store that accumulates tagged
// samples while a burst capture is running.
package burst

import (
	"errors"
	"fmt"
	"iter"

	"github.com/itohio/launchscope/pkg/sample"
)

// DefaultCapacity is the memory depth of the board (~15.7 KiB of words).
const DefaultCapacity = 16100

// ErrFull is returned by Append once the cursor has reached capacity.
var ErrFull = errors.New("burst buffer full")

// Buffer is a single-writer store of tagged words with a write cursor.
// It is allocated once and reused for every burst.
type Buffer struct {
	words   []sample.Word
	cursor  int
	drained bool
}

// New allocates a buffer holding capacity words.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid burst capacity %d", capacity)
	}
	return &Buffer{words: make([]sample.Word, capacity)}, nil
}

// Reset rewinds the cursor for the next burst. Stored words are left in
// place and get overwritten.
func (b *Buffer) Reset() {
	b.cursor = 0
	b.drained = false
}

// Append stores w at the cursor and reports whether the buffer just became full.
func (b *Buffer) Append(w sample.Word) (bool, error) {
	if b.cursor >= len(b.words) {
		return true, ErrFull
	}
	b.words[b.cursor] = w
	b.cursor++
	return b.cursor == len(b.words), nil
}

// Len returns the number of words written since the last Reset.
func (b *Buffer) Len() int {
	return b.cursor
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.words)
}

// Full reports whether the cursor has reached capacity.
func (b *Buffer) Full() bool {
	return b.cursor == len(b.words)
}

// Drain yields the stored words in write order. A buffer drains once;
// later calls yield nothing until Reset.
func (b *Buffer) Drain() iter.Seq[sample.Word] {
	return func(yield func(sample.Word) bool) {
		if b.drained {
			return
		}
		b.drained = true
		for _, w := range b.words[:b.cursor] {
			if !yield(w) {
				return
			}
		}
	}
}
