package engine

import "sort"

// Registry records how many times each option is selected. Absence means zero.
type Registry struct {
	counts map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]int)}
}

// Count returns the selection count of an option
func (r *Registry) Count(id string) int {
	return r.counts[id]
}

// Selected reports whether an option is selected at least once
func (r *Registry) Selected(id string) bool {
	return r.counts[id] >= 1
}

// Increment adds one selection. Callers check the cap.
func (r *Registry) Increment(id string) {
	r.counts[id]++
}

// Decrement removes one selection, dropping the entry at zero
func (r *Registry) Decrement(id string) {
	count, ok := r.counts[id]
	if !ok {
		return
	}
	if count <= 1 {
		delete(r.counts, id)
		return
	}
	r.counts[id] = count - 1
}

// IDs returns the selected option IDs, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.counts))
	for id := range r.counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Counts returns a copy of all counts
func (r *Registry) Counts() map[string]int {
	out := make(map[string]int, len(r.counts))
	for id, count := range r.counts {
		out[id] = count
	}
	return out
}

func (r *Registry) set(id string, count int) {
	if count <= 0 {
		delete(r.counts, id)
		return
	}
	r.counts[id] = count
}

func (r *Registry) clear() {
	r.counts = make(map[string]int)
}
