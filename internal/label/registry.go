package label

import "strconv"

// Registry assigns numbers to label keys. Each group draws from its own
// counter and bare labels share one global counter; every counter starts
// at 1. Numbers are assigned on first declaration and held as strings,
// the form substituted into text.
type Registry struct {
	assigned      map[Key]string
	order         []Key
	groupCounters map[string]int
	globalCounter int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset clears all assignments and counters for a new run.
func (r *Registry) Reset() {
	r.assigned = make(map[Key]string)
	r.order = nil
	r.groupCounters = make(map[string]int)
	r.globalCounter = 1
}

// Declare assigns the next number for the key's scope on first sight
// and returns it. Re-declaring an assigned key returns the stored
// number unchanged; counters do not advance again.
func (r *Registry) Declare(key Key) string {
	if num, ok := r.assigned[key]; ok {
		return num
	}

	var n int
	if key.IsGrouped() {
		c, ok := r.groupCounters[key.Group]
		if !ok {
			c = 1
		}
		n = c
		r.groupCounters[key.Group] = c + 1
	} else {
		n = r.globalCounter
		r.globalCounter++
	}

	num := strconv.Itoa(n)
	r.assigned[key] = num
	r.order = append(r.order, key)
	return num
}

// Resolve looks up the number assigned to key. It never mutates the
// registry.
func (r *Registry) Resolve(key Key) (string, bool) {
	num, ok := r.assigned[key]
	return num, ok
}

// Len returns the number of assigned keys.
func (r *Registry) Len() int {
	return len(r.assigned)
}

// Keys returns the assigned keys in declaration order.
func (r *Registry) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}
