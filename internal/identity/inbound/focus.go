package inbound

import "go.uber.org/atomic"

// FocusTracker receives cursor moves from the login controller and tells the
// view which code box holds keyboard focus. Moves may arrive from command
// goroutines, so the index is atomic.
type FocusTracker struct {
	index *atomic.Int64
}

func NewFocusTracker() *FocusTracker {
	return &FocusTracker{index: atomic.NewInt64(-1)}
}

func (f *FocusTracker) FocusChanged(index int) {
	f.index.Store(int64(index))
}

// Index is the focused box, -1 before the first move.
func (f *FocusTracker) Index() int {
	return int(f.index.Load())
}
