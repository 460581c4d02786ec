package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName     = errors.New("name already taken by another entity")
	ErrAlreadyRegistered = errors.New("entity already registered")
	ErrNotFound          = errors.New("not found")
	ErrIdentityMismatch  = errors.New("name is registered to a different entity")
)

// Entity is anything that can be kept in a Registry.
// The name is the lookup key; the ID tells two same-named entities apart.
type Entity interface {
	Name() string
	ID() uuid.UUID
}

// Ref points at a registered entity either by name or by handle.
// A handle ref remembers which entity it was taken from, so resolving it
// fails if the name has since been reused.
type Ref struct {
	name     string
	id       uuid.UUID
	byHandle bool
}

// ByName refers to whatever entity is registered under name.
func ByName(name string) Ref {
	return Ref{name: name}
}

// ByHandle refers to e itself.
func ByHandle(e Entity) Ref {
	return Ref{name: e.Name(), id: e.ID(), byHandle: true}
}

// Name returns the name the ref resolves through.
func (r Ref) Name() string {
	return r.name
}

// IsHandle reports whether the ref was taken from an entity.
func (r Ref) IsHandle() bool {
	return r.byHandle
}

func (r Ref) String() string {
	if r.byHandle {
		return fmt.Sprintf("%s(%s)", r.name, r.id)
	}
	return r.name
}

// Registry is a name-keyed collection of entities of one kind.
// It is not safe for concurrent use.
type Registry[T Entity] struct {
	caption string
	items   map[string]T
	logger  *slog.Logger
}

// New creates an empty registry. The caption ("scene", "player") is used
// in error messages.
func New[T Entity](caption string, logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry[T]{
		caption: caption,
		items:   make(map[string]T),
		logger:  logger,
	}
}

// Add inserts e under its name.
func (r *Registry[T]) Add(e T) error {
	name := e.Name()
	if existing, ok := r.items[name]; ok {
		if existing.ID() == e.ID() {
			return fmt.Errorf("%s %q: %w", r.caption, name, ErrAlreadyRegistered)
		}
		return fmt.Errorf("%s %q: %w", r.caption, name, ErrDuplicateName)
	}
	r.items[name] = e
	r.logger.Debug("Registered entity", "kind", r.caption, "name", name, "id", e.ID())
	return nil
}

// Resolve returns the entity ref points at.
func (r *Registry[T]) Resolve(ref Ref) (T, error) {
	var zero T
	e, ok := r.items[ref.name]
	if !ok {
		return zero, fmt.Errorf("%s %q: %w", r.caption, ref.name, ErrNotFound)
	}
	if ref.byHandle && e.ID() != ref.id {
		return zero, fmt.Errorf("%s %q: %w", r.caption, ref.name, ErrIdentityMismatch)
	}
	return e, nil
}

// Remove resolves ref and deletes the entity.
func (r *Registry[T]) Remove(ref Ref) (T, error) {
	e, err := r.Resolve(ref)
	if err != nil {
		return e, err
	}
	delete(r.items, ref.name)
	r.logger.Debug("Removed entity", "kind", r.caption, "name", ref.name, "id", e.ID())
	return e, nil
}

// Contains reports whether anything is registered under name.
func (r *Registry[T]) Contains(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered entities sorted by name.
func (r *Registry[T]) All() []T {
	out := make([]T, 0, len(r.items))
	for _, name := range r.Names() {
		out = append(out, r.items[name])
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry[T]) Len() int {
	return len(r.items)
}
