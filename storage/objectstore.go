package storage

import "context"

// ObjectEntry is one item returned by a bucket listing. Folder placeholders
// come back without an ID.
type ObjectEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ObjectStore is the slice of the storage provider the reconciliation engine
// needs: a one-level listing and a batched remove.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]ObjectEntry, error)
	Remove(ctx context.Context, keys []string) error
}
