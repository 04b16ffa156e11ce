package frequency

import (
	"slices"
	"sync"

	"github.com/drblury/wordgate/apierr"
)

// WordCount pairs a word with the number of times it was served.
type WordCount struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// Tracker is a mutex-guarded word counter. Entries keep their first-insertion
// order, which Top uses to break ties between equal counts.
type Tracker struct {
	mu      sync.RWMutex
	index   map[string]int
	entries []WordCount
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{index: make(map[string]int)}
}

// Record increments the count for word, creating it at 1 when absent.
// Empty words are ignored.
func (t *Tracker) Record(word string) {
	if word == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if i, ok := t.index[word]; ok {
		t.entries[i].Frequency++
		return
	}
	t.index[word] = len(t.entries)
	t.entries = append(t.entries, WordCount{Word: word, Frequency: 1})
}

// Top returns the n most frequent words ordered by descending count. When
// fewer than n words are known, all of them are returned.
func (t *Tracker) Top(n int) ([]WordCount, error) {
	if n <= 0 {
		return nil, apierr.InvalidArgument("n must be a positive integer, got %d", n)
	}

	ranked := t.Snapshot()
	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return b.Frequency - a.Frequency
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Count returns the current count for word.
func (t *Tracker) Count(word string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i, ok := t.index[word]; ok {
		return t.entries[i].Frequency
	}
	return 0
}

// Len returns the number of distinct words recorded.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Snapshot returns a copy of every entry in first-insertion order. The
// result is never nil.
func (t *Tracker) Snapshot() []WordCount {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]WordCount, len(t.entries))
	copy(out, t.entries)
	return out
}
