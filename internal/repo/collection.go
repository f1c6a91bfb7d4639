package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
)

// Entity is the element contract for a Collection: every stored model
// exposes its identifier.
type Entity interface {
	EntityID() string
}

// SnapshotObserver is notified after every persisted snapshot write.
type SnapshotObserver interface {
	IncSnapshotWrite(collection string)
}

// Collection is an in-memory arena over one KV snapshot. The full JSON
// array is loaded once at open; every mutation rewrites the whole
// snapshot under the collection key. Insertion order is preserved and
// lookups go through an id index.
type Collection[T Entity] struct {
	store    kv.Store
	key      string
	observer SnapshotObserver

	mu    sync.RWMutex
	items []T
	index map[string]int
}

// OpenCollection loads the snapshot stored under key. A missing key
// yields an empty collection, not an error.
func OpenCollection[T Entity](ctx context.Context, store kv.Store, key string, observer SnapshotObserver) (*Collection[T], error) {
	c := &Collection[T]{
		store:    store,
		key:      key,
		observer: observer,
		index:    make(map[string]int),
	}
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return c, nil
		}
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("loading collection %q", key))
	}
	if err := json.Unmarshal(raw, &c.items); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("decoding collection %q", key))
	}
	for i, item := range c.items {
		c.index[item.EntityID()] = i
	}
	return c, nil
}

// Key returns the KV key this collection persists under.
func (c *Collection[T]) Key() string { return c.key }

// List returns all items in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the item with the given id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.index[id]; ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the items matching pred, in insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Count returns how many items match pred. A nil pred counts everything.
func (c *Collection[T]) Count(pred func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if pred == nil {
		return len(c.items)
	}
	n := 0
	for _, item := range c.items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Add appends item and persists the snapshot. Duplicate ids are
// rejected with a conflict error.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := item.EntityID()
	if _, ok := c.index[id]; ok {
		return errors.New(errors.CodeConflict, fmt.Sprintf("id %q already exists in %q", id, c.key))
	}
	c.items = append(c.items, item)
	c.index[id] = len(c.items) - 1
	if err := c.persist(ctx); err != nil {
		c.rollbackAdd(id)
		return err
	}
	return nil
}

// Prepend inserts item at the head of the collection and persists the
// snapshot. Duplicate ids are rejected with a conflict error.
func (c *Collection[T]) Prepend(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := item.EntityID()
	if _, ok := c.index[id]; ok {
		return errors.New(errors.CodeConflict, fmt.Sprintf("id %q already exists in %q", id, c.key))
	}
	c.items = append([]T{item}, c.items...)
	c.reindex()
	if err := c.persist(ctx); err != nil {
		c.items = c.items[1:]
		c.reindex()
		return err
	}
	return nil
}

// Update replaces the item carrying the same id in place. It reports
// false, without error, when the id is absent.
func (c *Collection[T]) Update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[item.EntityID()]
	if !ok {
		return false, nil
	}
	previous := c.items[i]
	c.items[i] = item
	if err := c.persist(ctx); err != nil {
		c.items[i] = previous
		return false, err
	}
	return true, nil
}

// Delete removes the item with the given id. It reports false, without
// error, when the id is absent.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return false, nil
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	if err := c.persist(ctx); err != nil {
		rest := make([]T, 0, len(c.items)+1)
		rest = append(rest, c.items[:i]...)
		rest = append(rest, removed)
		rest = append(rest, c.items[i:]...)
		c.items = rest
		c.reindex()
		return false, err
	}
	return true, nil
}

// persist writes the whole snapshot. Callers hold the write lock.
func (c *Collection[T]) persist(ctx context.Context) error {
	raw, err := json.Marshal(c.items)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("encoding collection %q", c.key))
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("persisting collection %q", c.key))
	}
	if c.observer != nil {
		c.observer.IncSnapshotWrite(c.key)
	}
	return nil
}

func (c *Collection[T]) rollbackAdd(id string) {
	c.items = c.items[:len(c.items)-1]
	delete(c.index, id)
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, item := range c.items {
		c.index[item.EntityID()] = i
	}
}
