package store

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	domainerrors "github.com/marczakjulia/BYT-PROJECT/internal/errors"
)

// Identifiable is implemented by every entity an Extent can hold.
type Identifiable interface {
	comparable
	ID() string
}

// Extent is the ordered set of all live instances of one entity type.
// Iteration follows registration order.
type Extent[T Identifiable] struct {
	mu      sync.RWMutex
	kind    string
	items   []T
	byID    map[string]T
	indexes []Index[T]
}

// Index defines a secondary lookup on an extent.
type Index[T any] struct {
	name            string
	keyGen          func(T) []string
	lookupTransform func(string) string // Optional transformation for lookups
}

// NewExtent creates an empty extent. kind names the entity type in errors.
func NewExtent[T Identifiable](kind string) *Extent[T] {
	return &Extent[T]{
		kind:    kind,
		byID:    make(map[string]T),
		indexes: make([]Index[T], 0),
	}
}

// WithIndex adds a secondary index to the extent.
// Keys are derived at lookup time, so they follow in-place entity edits.
func (e *Extent[T]) WithIndex(name string, keyGen func(T) []string) *Extent[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:   name,
		keyGen: keyGen,
	})
	return e
}

// WithIndexTransform adds a secondary index whose lookup values, and
// generated keys, pass through transform first.
func (e *Extent[T]) WithIndexTransform(name string, keyGen func(T) []string, transform func(string) string) *Extent[T] {
	e.indexes = append(e.indexes, Index[T]{
		name:            name,
		keyGen:          keyGen,
		lookupTransform: transform,
	})
	return e
}

// Kind returns the entity type name.
func (e *Extent[T]) Kind() string {
	return e.kind
}

// Add registers item. Adding the same instance twice is a no-op; adding a
// different instance under a taken ID returns ErrAlreadyExists.
func (e *Extent[T]) Add(item T) error {
	var zero T
	if item == zero {
		return domainerrors.InvalidArgumentf("%s is required", e.kind)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := item.ID()
	if existing, ok := e.byID[id]; ok {
		if existing == item {
			return nil
		}
		return fmt.Errorf("%s %s: %w", e.kind, id, ErrAlreadyExists)
	}

	e.items = append(e.items, item)
	e.byID[id] = item
	return nil
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity is not registered.
func (e *Extent[T]) Get(id string) (T, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	item, ok := e.byID[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", e.kind, id, ErrNotFound)
	}
	return item, nil
}

// Contains reports whether item is the instance registered under its ID.
func (e *Extent[T]) Contains(item T) bool {
	var zero T
	if item == zero {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.byID[item.ID()] == item
}

// Remove deregisters the entity with the given ID.
// This operation is idempotent and reports whether anything was removed.
func (e *Extent[T]) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	item, ok := e.byID[id]
	if !ok {
		return false
	}
	delete(e.byID, id)
	e.items, _ = removeFirst(e.items, item)
	return true
}

// All returns a copy of the registered entities in registration order.
func (e *Extent[T]) All() []T {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return slices.Clone(e.items)
}

// Seq iterates over a snapshot of the extent, so callers may mutate the
// extent while ranging.
func (e *Extent[T]) Seq() iter.Seq[T] {
	return slices.Values(e.All())
}

// Len returns the number of registered entities.
func (e *Extent[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.items)
}

// Clear removes every entity.
func (e *Extent[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.byID = make(map[string]T)
}

// FindBy returns the entities whose index keys include value, in
// registration order.
func (e *Extent[T]) FindBy(indexName, value string) ([]T, error) {
	idx, ok := e.index(indexName)
	if !ok {
		return nil, domainerrors.InvalidArgumentf("%s has no index %q", e.kind, indexName)
	}

	if idx.lookupTransform != nil {
		value = idx.lookupTransform(value)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var found []T
	for _, item := range e.items {
		for _, key := range idx.keyGen(item) {
			if idx.lookupTransform != nil {
				key = idx.lookupTransform(key)
			}
			if key == value {
				found = append(found, item)
				break
			}
		}
	}
	return found, nil
}

// FindOne returns the first entity matching value on the index.
// Returns ErrNotFound when nothing matches.
func (e *Extent[T]) FindOne(indexName, value string) (T, error) {
	var zero T
	found, err := e.FindBy(indexName, value)
	if err != nil {
		return zero, err
	}
	if len(found) == 0 {
		return zero, fmt.Errorf("%s with %s %q: %w", e.kind, indexName, value, ErrNotFound)
	}
	return found[0], nil
}

func (e *Extent[T]) index(name string) (Index[T], bool) {
	for _, idx := range e.indexes {
		if idx.name == name {
			return idx, true
		}
	}
	return Index[T]{}, false
}

func removeFirst[T comparable](s []T, item T) ([]T, bool) {
	i := slices.Index(s, item)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}
