package monitor

import (
	"sync"

	"github.com/robotops/ro1mon/internal/source"
)

// DefaultHistorySize is the default number of samples to retain.
const DefaultHistorySize = 300

// History is the bounded, time-ordered record of poll samples backing
// the table sparklines and the time-series chart. When full, the
// oldest sample is dropped first. Thread-safe: the poll command and
// the render path touch it from different goroutines.
type History struct {
	mu      sync.RWMutex
	size    int
	samples []source.Sample
}

// NewHistory creates a history capped at size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		samples: make([]source.Sample, 0, size),
	}
}

// Push appends a sample, dropping the oldest when the cap is reached.
func (h *History) Push(s source.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == h.size {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.size-1]
	}
	h.samples = append(h.samples, s)
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Cap returns the retention limit.
func (h *History) Cap() int {
	return h.size
}

// Last returns the most recent sample, false when empty.
func (h *History) Last() (source.Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return source.Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Series extracts up to count numeric values of one variable in
// chronological order (oldest first). Ticks where the variable was
// null or non-numeric are skipped, so gaps compress rather than
// plotting as zero.
func (h *History) Series(name string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if count <= 0 {
		return nil
	}

	var out []float64
	for _, s := range h.samples {
		if v, ok := s.Get(name).Numeric(); ok {
			out = append(out, v)
		}
	}
	if len(out) > count {
		out = out[len(out)-count:]
	}
	return out
}

// Names returns the variable names of the most recent sample, in the
// order they were polled.
func (h *History) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return nil
	}
	last := h.samples[len(h.samples)-1]
	names := make([]string, len(last.Names))
	copy(names, last.Names)
	return names
}

// Clear drops all samples, keeping the cap.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}
