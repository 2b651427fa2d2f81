package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/tokenrule/pkg/errors"
)

// Registry stores items by name and is safe for concurrent use
type Registry[T any] interface {
	// Register adds an item; names must be unique and non-empty
	Register(name string, item T) error

	// Get retrieves an item, failing with NOT_FOUND
	Get(name string) (T, error)

	// Has checks if an item is registered
	Has(name string) bool

	// List returns all registered names in sorted order
	List() []string

	// Count returns the number of registered items
	Count() int
}

type registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty registry. kind names the items in error messages,
// e.g. "codec".
func New[T any](kind string) Registry[T] {
	if kind == "" {
		kind = "item"
	}
	return &registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s '%s' is already registered", r.kind, name)
	}
	r.items[name] = item
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%s '%s' not found", r.kind, name)
	}
	return item, nil
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Meant for init() functions, where a failure is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
