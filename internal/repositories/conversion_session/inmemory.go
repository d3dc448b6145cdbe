package conversionsession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/clock"
)

// InMemoryRepository implements Repository for a single server process
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Session
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*Session),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Create stores a new session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.pruneLocked()

	if _, exists := r.store[input.Session.ID]; exists {
		return nil, errors.FailedPrecondition(errAlreadyExists).WithMeta("session_id", input.Session.ID)
	}

	session := input.Session.Clone()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(ttl)
	r.store[session.ID] = session

	return &CreateOutput{Session: session.Clone()}, nil
}

// Get retrieves a live session
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Session: session.Clone()}, nil
}

// Update replaces a live session, keeping its creation and expiry times
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.store[input.Session.ID]
	if !exists {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.Session.ID)
	}
	if !r.clock.Now().Before(existing.ExpiresAt) {
		delete(r.store, input.Session.ID)
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.Session.ID)
	}

	session := input.Session.Clone()
	session.CreatedAt = existing.CreatedAt
	session.ExpiresAt = existing.ExpiresAt
	r.store[session.ID] = session

	return &UpdateOutput{Session: session.Clone()}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}

// pruneLocked drops expired sessions. Caller holds the write lock.
func (r *InMemoryRepository) pruneLocked() {
	now := r.clock.Now()
	for id, session := range r.store {
		if !now.Before(session.ExpiresAt) {
			delete(r.store, id)
		}
	}
}
