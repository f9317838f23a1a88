package store

import "sync"

// LabelRegistry is a small observable key→value map for UI labels
// (breadcrumb titles, header captions) whose values are pushed by whichever
// component currently owns them. Lifecycle is owned by the surrounding
// application; there is no implicit global instance.
type LabelRegistry struct {
	mu      sync.Mutex
	labels  map[string]string
	subs    map[int]func(key, value string)
	nextSub int
}

func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{
		labels: make(map[string]string),
		subs:   make(map[int]func(key, value string)),
	}
}

// Set stores the value and notifies subscribers. Setting an unchanged value
// is suppressed so subscribers see only real transitions.
func (r *LabelRegistry) Set(key, value string) {
	r.mu.Lock()
	if r.labels[key] == value {
		r.mu.Unlock()
		return
	}
	r.labels[key] = value
	fns := make([]func(string, string), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(key, value)
	}
}

// Get returns the current value for key, if any.
func (r *LabelRegistry) Get(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.labels[key]
	return v, ok
}

// Snapshot returns a copy of the whole label map.
func (r *LabelRegistry) Snapshot() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.labels))
	for k, v := range r.labels {
		out[k] = v
	}
	return out
}

// Subscribe registers fn for every label change; the returned cancel func
// removes the subscription.
func (r *LabelRegistry) Subscribe(fn func(key, value string)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}
