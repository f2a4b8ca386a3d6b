package args

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/herald-tools/herald/internal/usage"
)

// ErrAlreadyRegistered is returned when a resolver name is registered twice.
var ErrAlreadyRegistered = errors.New("argument type already registered")

// Registry maps argument type names to resolvers. It is thread-safe and
// supports registration at runtime, though the surrounding framework is
// expected to populate it before any command executes.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register adds a named resolver. Re-registering a name is an error: the
// same name must always mean the same behavior.
func (r *Registry) Register(name string, fn Resolver) error {
	if name == "" {
		return fmt.Errorf("argument type name required")
	}
	if fn == nil {
		return fmt.Errorf("resolver for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resolvers[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.resolvers[name] = fn
	return nil
}

// MustRegister registers a resolver and panics on error. Use for static
// registration at startup.
func (r *Registry) MustRegister(name string, fn Resolver) {
	if err := r.Register(name, fn); err != nil {
		panic(fmt.Sprintf("failed to register argument type %s: %v", name, err))
	}
}

// Resolve looks up a registered resolver. An unknown name is a configuration
// error, distinct from a value failing to parse.
func (r *Registry) Resolve(name string) (Resolver, *usage.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.resolvers[name]
	if !ok {
		return nil, usage.UnknownArgumentType(name)
	}
	return fn, nil
}

// Has reports whether a resolver with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resolvers[name]
	return ok
}

// Names returns all registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.resolvers))
	for name := range r.resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
