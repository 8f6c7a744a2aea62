package generator

import (
	"sync"

	"github.com/go-drift/generator/pkg/handler"
)

// Properties is a lazily populated value cache scoped to one generator.
// Keys must be comparable.
type Properties struct {
	store lazyStore[any]
}

// GetOrCreate returns the value cached under key, calling create to build
// it on first use. Concurrent first calls for the same key run create once;
// a failed create is not cached.
func (p *Properties) GetOrCreate(key any, create func() (any, error)) (any, error) {
	return p.store.getOrCreate(key, create)
}

// Get returns the value cached under key, if any.
func (p *Properties) Get(key any) (any, bool) {
	return p.store.load(key)
}

type cacheKey struct {
	tag   any
	key   handler.Type
	value handler.Type
}

// Cache returns the K to V container stored on g under tag, creating an
// empty one on first use. The same tag used with different K or V yields
// distinct containers.
func Cache[K comparable, V any](g *Generator, tag any) *KeyedCache[K, V] {
	key := cacheKey{tag: tag, key: handler.TypeOf[K](), value: handler.TypeOf[V]()}
	v, _ := g.properties.GetOrCreate(key, func() (any, error) {
		return NewKeyedCache[K, V](), nil
	})
	return v.(*KeyedCache[K, V])
}

// KeyedCache is a concurrency-safe map.
type KeyedCache[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
}

// NewKeyedCache creates an empty cache.
func NewKeyedCache[K comparable, V any]() *KeyedCache[K, V] {
	return &KeyedCache[K, V]{values: make(map[K]V)}
}

// Load returns the value stored under key.
func (c *KeyedCache[K, V]) Load(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Store sets the value under key.
func (c *KeyedCache[K, V]) Store(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Delete removes key.
func (c *KeyedCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// Len returns the number of entries.
func (c *KeyedCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// Keys returns the keys in unspecified order.
func (c *KeyedCache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]K, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// GetOrAdd returns the value under key, storing the result of create if
// absent. create runs with the cache locked and must not call back into it.
func (c *KeyedCache[K, V]) GetOrAdd(key K, create func() V) V {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[key]; ok {
		return v
	}
	v = create()
	c.values[key] = v
	return v
}
