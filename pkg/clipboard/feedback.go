package clipboard

import (
	"sync"
	"time"

	"github.com/agentstation/snipdeck/pkg/constants"
)

// ChangeFunc is called whenever a key's status changes.
type ChangeFunc func(key string, status Status)

// Feedback copies text through a Writer and keeps a per-key status that
// reverts to StatusIdle after Duration.
type Feedback struct {
	writer   Writer
	duration time.Duration

	mu       sync.Mutex
	statuses map[string]Status
	timers   map[string]*time.Timer
	gens     map[string]uint64
	onChange []ChangeFunc
}

// NewFeedback creates a Feedback. A nil writer uses System and a
// non-positive duration uses constants.CopyFeedbackDuration.
func NewFeedback(w Writer, d time.Duration) *Feedback {
	if w == nil {
		w = System()
	}
	if d <= 0 {
		d = constants.CopyFeedbackDuration
	}
	return &Feedback{
		writer:   w,
		duration: d,
		statuses: make(map[string]Status),
		timers:   make(map[string]*time.Timer),
		gens:     make(map[string]uint64),
	}
}

// Duration returns how long a copy outcome stays visible.
func (f *Feedback) Duration() time.Duration {
	return f.duration
}

// OnChange registers fn to be called on every status change.
func (f *Feedback) OnChange(fn ChangeFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = append(f.onChange, fn)
}

// Copy writes text and marks key as copied or failed. The write is not
// retried. A newer copy for the same key supersedes a pending revert.
func (f *Feedback) Copy(key, text string) Status {
	status := StatusCopied
	if err := f.writer.WriteAll(text); err != nil {
		status = StatusFailed
	}

	f.mu.Lock()
	f.gens[key]++
	gen := f.gens[key]
	if t, ok := f.timers[key]; ok {
		t.Stop()
	}
	f.statuses[key] = status
	f.timers[key] = time.AfterFunc(f.duration, func() {
		f.revert(key, gen)
	})
	hooks := f.hooks()
	f.mu.Unlock()

	for _, fn := range hooks {
		fn(key, status)
	}
	return status
}

// Status returns the current status of key.
func (f *Feedback) Status(key string) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[key]
}

// Stop cancels every pending revert and resets all keys to idle.
func (f *Feedback) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, t := range f.timers {
		t.Stop()
		delete(f.timers, key)
		f.gens[key]++
	}
	clear(f.statuses)
}

func (f *Feedback) revert(key string, gen uint64) {
	f.mu.Lock()
	if f.gens[key] != gen {
		f.mu.Unlock()
		return
	}
	delete(f.statuses, key)
	delete(f.timers, key)
	hooks := f.hooks()
	f.mu.Unlock()

	for _, fn := range hooks {
		fn(key, StatusIdle)
	}
}

// hooks returns a copy of the callbacks. Callers hold mu.
func (f *Feedback) hooks() []ChangeFunc {
	out := make([]ChangeFunc, len(f.onChange))
	copy(out, f.onChange)
	return out
}
