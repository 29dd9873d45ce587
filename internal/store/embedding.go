// Package store holds the in-memory article and embedding stores, with
// optional SQLite backing for persistence across runs.
package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDimensionMismatch indicates a vector whose length conflicts with
// the store's established dimensionality. The offending record is
// skipped; the store is never corrupted.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Entry is an (id, vector) pair from the embedding store.
type Entry struct {
	ID     string
	Vector []float32
}

// EmbeddingStore maps article ids to embedding vectors. It is the single
// owner of the id-to-vector mapping: orchestration code only reads it.
//
// Reads are safe for concurrent use. Writes are serialized by the store
// lock; racing Puts for the same id resolve last-writer-wins. Readers
// observe a point-in-time copy, so a Put during enumeration never
// affects an in-flight All.
type EmbeddingStore struct {
	mu      sync.RWMutex
	dims    int
	vectors map[string][]float32
}

// NewEmbeddingStore creates an empty embedding store. Dimensionality is
// pinned by the first successful Put.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{vectors: make(map[string][]float32)}
}

// Put inserts or overwrites the vector for an id. Returns
// ErrDimensionMismatch if the store has an established dimensionality
// and the vector's length differs, or if the vector is empty.
func (s *EmbeddingStore) Put(id string, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector for %q", ErrDimensionMismatch, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dims == 0 {
		s.dims = len(vector)
	} else if len(vector) != s.dims {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), s.dims)
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)
	s.vectors[id] = stored
	return nil
}

// Get returns the vector for an id.
func (s *EmbeddingStore) Get(id string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vectors[id]
	return v, ok
}

// BatchGet returns the vectors for the given ids, omitting ids that are
// not present.
func (s *EmbeddingStore) BatchGet(ids []string) map[string][]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]float32, len(ids))
	for _, id := range ids {
		if v, ok := s.vectors[id]; ok {
			out[id] = v
		}
	}
	return out
}

// All returns a snapshot of every (id, vector) pair. The snapshot is
// finite and restartable: a fresh call re-enumerates current contents.
func (s *EmbeddingStore) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.vectors))
	for id, v := range s.vectors {
		entries = append(entries, Entry{ID: id, Vector: v})
	}
	return entries
}

// Dimensions returns the established vector dimensionality, or 0 if no
// vector has been stored yet.
func (s *EmbeddingStore) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dims
}

// Len returns the number of stored vectors.
func (s *EmbeddingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}
