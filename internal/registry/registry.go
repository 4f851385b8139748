// Package registry owns the lazily created namespace identifiers for the
// external document store and vector index. Identifiers are created at most
// once per process and memoized; a failed creation leaves the slot unset so
// a later call retries.
package registry

import (
	"context"
	"sync"

	"github.com/lakeworks/ragline/internal/domain"
)

// Kind identifies a namespace slot.
type Kind string

const (
	KindDocumentStore Kind = "document_store"
	KindVectorIndex   Kind = "vector_index"
)

// Creator performs the remote creation call for one namespace kind and
// returns the new identifier.
type Creator func(ctx context.Context) (string, error)

type entry struct {
	mu     sync.Mutex
	id     string
	create Creator
}

// Registry memoizes namespace identifiers per kind. First-creation is
// guarded per kind: a concurrent second caller waits for the first result
// instead of creating a duplicate namespace.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]*entry
}

// New creates a Registry with no registered kinds.
func New() *Registry {
	return &Registry{entries: make(map[Kind]*entry)}
}

// Register binds a creation function to a kind. Registering a kind twice
// replaces the creator but keeps any memoized identifier.
func (r *Registry) Register(kind Kind, create Creator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[kind]; ok {
		e.create = create
		return
	}
	r.entries[kind] = &entry{create: create}
}

// Ensure returns the memoized identifier for kind, performing the remote
// creation call on first use. Exactly one creation call happens per kind
// under non-failing conditions.
func (r *Registry) Ensure(ctx context.Context, kind Kind) (string, error) {
	r.mu.RLock()
	e, ok := r.entries[kind]
	r.mu.RUnlock()
	if !ok {
		return "", domain.NewPipelineError(domain.ErrCodeResourceCreation, "no creator registered for namespace kind "+string(kind))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.id != "" {
		return e.id, nil
	}

	id, err := e.create(ctx)
	if err != nil {
		return "", domain.NewPipelineErrorWithCause(domain.ErrCodeResourceCreation, "failed to create "+string(kind)+" namespace", err)
	}
	if id == "" {
		return "", domain.NewPipelineError(domain.ErrCodeResourceCreation, string(kind)+" creation response missing identifier")
	}

	e.id = id
	return e.id, nil
}

// Lookup returns the memoized identifier without triggering creation. The
// retrieval pipeline uses this as its readiness probe before searching.
func (r *Registry) Lookup(kind Kind) (string, bool) {
	r.mu.RLock()
	e, ok := r.entries[kind]
	r.mu.RUnlock()
	if !ok {
		return "", false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.id == "" {
		return "", false
	}
	return e.id, true
}
