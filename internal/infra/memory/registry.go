package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"comms_governance/internal/domain/communication"
)

// Custom errors
var ErrEntryNotFound = errors.New("communication entry not found")
var ErrDuplicateID = errors.New("communication entry with this id already exists")

// Registry is the in-memory communication.Registry. It lives as long as the process;
// nothing is persisted.
type Registry struct {
	mu      sync.RWMutex
	entries []communication.Entry // most recent first
}

// NewRegistry creates a registry holding seed in the given order.
// Every seed entry must pass validation and ids must be unique.
func NewRegistry(seed []communication.Entry) (*Registry, error) {
	r := &Registry{entries: make([]communication.Entry, 0, len(seed))}
	seen := make(map[string]struct{}, len(seed))
	for i, e := range seed {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("seed entry %d (%s): %w", i, e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
		r.entries = append(r.entries, e)
	}
	return r, nil
}

func (r *Registry) Insert(ctx context.Context, e communication.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(e.ID) >= 0 {
		return ErrDuplicateID
	}
	r.entries = append([]communication.Entry{e}, r.entries...)
	return nil
}

// Replace substitutes the entry with the same id wholesale, keeping its position.
func (r *Registry) Replace(ctx context.Context, e communication.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(e.ID)
	if i < 0 {
		return ErrEntryNotFound
	}
	r.entries[i] = e
	return nil
}

func (r *Registry) Get(ctx context.Context, id string) (communication.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return communication.Entry{}, ErrEntryNotFound
	}
	return r.entries[i], nil
}

func (r *Registry) All(ctx context.Context) ([]communication.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]communication.Entry, len(r.entries))
	copy(snapshot, r.entries)
	return snapshot, nil
}

// Len reports how many entries are held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// indexOf must be called with the lock held.
func (r *Registry) indexOf(id string) int {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return i
		}
	}
	return -1
}
