// ABOUTME: Ordered filter/action registry for extension points
// ABOUTME: Callbacks run in registration order; filters thread replacement values

package hooks

// FilterFunc inspects the current value for a named extension point and
// returns a replacement. The second return reports whether the callback has
// an opinion; when false the value passes through unchanged.
type FilterFunc func(value any, args ...any) (any, bool)

// ActionFunc is a fire-and-forget notification callback.
type ActionFunc func(args ...any)

// Registry holds ordered filter and action callbacks keyed by extension
// point name. Registration happens during startup; after that the registry
// is read-only, so no locking is needed.
type Registry struct {
	filters map[string][]FilterFunc
	actions map[string][]ActionFunc
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string][]FilterFunc),
		actions: make(map[string][]ActionFunc),
	}
}

// AddFilter appends fn to the callback list for the named filter.
func (r *Registry) AddFilter(name string, fn FilterFunc) {
	r.filters[name] = append(r.filters[name], fn)
}

// AddAction appends fn to the callback list for the named action.
func (r *Registry) AddAction(name string, fn ActionFunc) {
	r.actions[name] = append(r.actions[name], fn)
}

// ApplyFilter runs value through every callback registered for name, in
// registration order, threading each opinionated replacement into the next
// callback. A nil registry returns value unchanged.
func (r *Registry) ApplyFilter(name string, value any, args ...any) any {
	if r == nil {
		return value
	}
	for _, fn := range r.filters[name] {
		if replacement, ok := fn(value, args...); ok {
			value = replacement
		}
	}
	return value
}

// DoAction notifies every callback registered for name, in registration
// order. A nil registry is a no-op.
func (r *Registry) DoAction(name string, args ...any) {
	if r == nil {
		return
	}
	for _, fn := range r.actions[name] {
		fn(args...)
	}
}
