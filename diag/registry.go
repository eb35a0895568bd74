// Package diag keeps named frame timers and last-recorded debug values.
// A Registry is owned by the application and handed to whoever records.
package diag

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const smoothing = 0.05

// Timer tracks min, max and an exponentially smoothed duration.
type Timer struct {
	Min, Max time.Duration
	Smooth   float64 // microseconds
	Count    uint64

	started time.Time
	running bool
}

func (t *Timer) start(now time.Time) {
	t.started = now
	t.running = true
}

func (t *Timer) stop(now time.Time) bool {
	if !t.running {
		return false
	}
	t.running = false
	elapsed := now.Sub(t.started)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > t.Max {
		t.Max = elapsed
	}
	if t.Count == 0 || elapsed < t.Min {
		t.Min = elapsed
	}
	t.Count++
	t.Smooth = (1-smoothing)*t.Smooth + smoothing*float64(elapsed.Microseconds())
	return true
}

func (t *Timer) String() string {
	return fmt.Sprintf("%0.3fms (%0.3f min, %0.3f max)",
		t.Smooth/1000, float64(t.Min.Microseconds())/1000, float64(t.Max.Microseconds())/1000)
}

// Registry is not safe for concurrent use; the simulation is single-threaded.
type Registry struct {
	timers map[string]*Timer
	scope  map[string]string
	now    func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		timers: make(map[string]*Timer),
		scope:  make(map[string]string),
		now:    time.Now,
	}
}

func (r *Registry) timer(label string) *Timer {
	t, ok := r.timers[label]
	if !ok {
		t = &Timer{}
		r.timers[label] = t
	}
	return t
}

// Start starts the timer label and returns the matching stop function.
// A nil Registry returns a no-op.
func (r *Registry) Start(label string) func() {
	if r == nil {
		return func() {}
	}
	t := r.timer(label)
	t.start(r.now())
	return func() { t.stop(r.now()) }
}

// Stop stops a timer started with Start. It reports false if label was not
// running.
func (r *Registry) Stop(label string) bool {
	if r == nil {
		return false
	}
	t, ok := r.timers[label]
	return ok && t.stop(r.now())
}

// Timer returns a snapshot of the timer label.
func (r *Registry) Timer(label string) (Timer, bool) {
	if r == nil {
		return Timer{}, false
	}
	t, ok := r.timers[label]
	if !ok {
		return Timer{}, false
	}
	return *t, true
}

// Record stores the formatted value under label, replacing the previous one.
func (r *Registry) Record(label string, value any) {
	if r == nil {
		return
	}
	r.scope[label] = fmt.Sprint(value)
}

// Value returns the last value recorded under label.
func (r *Registry) Value(label string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.scope[label]
	return v, ok
}

// Reset drops all timers and values.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	clear(r.timers)
	clear(r.scope)
}

// String lists timers, then recorded values, each sorted by label.
func (r *Registry) String() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, label := range sortedKeys(r.timers) {
		fmt.Fprintf(&b, "%s: %s\n", label, r.timers[label])
	}
	for _, label := range sortedKeys(r.scope) {
		fmt.Fprintf(&b, "%s: %s\n", label, r.scope[label])
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
