package repository

import (
	domainrepo "cataconta-webhook/internal/domain/interfaces/repository"
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepository keeps entities in process memory. Used when no MongoDB is configured.
type MemoryRepository[T any] struct {
	mu          sync.RWMutex
	collections map[string]map[string]T
}

func NewMemoryRepository[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{collections: make(map[string]map[string]T)}
}

func (r *MemoryRepository[T]) Upsert(_ context.Context, collectionName string, messageSid string, entity T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, ok := r.collections[collectionName]
	if !ok {
		collection = make(map[string]T)
		r.collections[collectionName] = collection
	}
	collection[messageSid] = entity
	return entity, nil
}

func (r *MemoryRepository[T]) FindByMessageSid(_ context.Context, collectionName string, messageSid string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.collections[collectionName][messageSid]
	if !ok {
		return entity, fmt.Errorf("%s %s: %w", collectionName, messageSid, domainrepo.ErrNotFound)
	}
	return entity, nil
}

// FindAll returns the collection ordered by message sid.
func (r *MemoryRepository[T]) FindAll(_ context.Context, collectionName string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collection := r.collections[collectionName]
	keys := make([]string, 0, len(collection))
	for key := range collection {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entities := make([]T, 0, len(keys))
	for _, key := range keys {
		entities = append(entities, collection[key])
	}
	return entities, nil
}
