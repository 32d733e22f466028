package communication

import "context"

// Registry holds the authoritative ordered collection of entries, most recent first.
// There is no delete: entries are only inserted or replaced by id.
type Registry interface {
	Insert(ctx context.Context, entry Entry) error
	Replace(ctx context.Context, entry Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	// All returns a snapshot; callers may keep it but changes do not reach the registry.
	All(ctx context.Context) ([]Entry, error)
}
