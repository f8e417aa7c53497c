// Package registry keeps named prototypes and hands out clones of them.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/creational/internal/log"
	"github.com/zjrosen/creational/internal/prototype"
)

// NoExpiration keeps registered prototypes until they are removed.
const NoExpiration = gocache.NoExpiration

// DefaultCleanupInterval is how often expired entries are purged.
const DefaultCleanupInterval = 30 * time.Minute

var (
	// ErrNotFound is returned when no prototype is registered under a name.
	ErrNotFound = errors.New("prototype not found")
	// ErrEmptyName is returned when registering under a blank name.
	ErrEmptyName = errors.New("prototype name is empty")
)

// Registry maps names to prototypes. Get always returns a fresh clone, so
// callers never share the stored instance.
type Registry[T prototype.Prototype[T]] struct {
	ttl   time.Duration
	cache *gocache.Cache
}

// New creates a registry. A ttl of 0 or NoExpiration keeps entries forever.
func New[T prototype.Prototype[T]](ttl, cleanupInterval time.Duration) *Registry[T] {
	if ttl == 0 {
		ttl = NoExpiration
	}
	return &Registry[T]{
		ttl:   ttl,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// NormalizeName trims surrounding whitespace. Every method applies it, so
// " demo " and "demo" address the same entry.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Register stores proto under name, replacing any previous entry.
func (r *Registry[T]) Register(name string, proto T) error {
	name = NormalizeName(name)
	if name == "" {
		return ErrEmptyName
	}
	r.cache.Set(name, proto, r.ttl)
	log.Debug(log.CatRegistry, "Registered prototype", "name", name)
	return nil
}

// Get returns a clone of the prototype registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	var zero T
	name = NormalizeName(name)

	value, found := r.cache.Get(name)
	if !found {
		log.Debug(log.CatRegistry, "Prototype miss", "name", name)
		return zero, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	proto, ok := value.(T)
	if !ok {
		log.Error(log.CatRegistry, "wrong type assertion when getting prototype", "name", name)
		return zero, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return proto.Clone(), nil
}

// Unregister removes name. Removing an unknown name is a no-op.
func (r *Registry[T]) Unregister(name string) {
	r.cache.Delete(NormalizeName(name))
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	items := r.cache.Items()
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered prototypes.
func (r *Registry[T]) Len() int {
	return r.cache.ItemCount()
}
