// Package store provides persistence for saved workspaces.
//
// The engine itself is in-memory only; saving and loading happen
// entirely outside it, through this package's [Store] interface.
// Documents hold a workspace's serialized graph record together with
// naming metadata. Backends:
//   - memory: for development and testing
//   - file: JSON documents on disk, for the CLI and single-host servers
//   - mongostore: MongoDB, for the hosted service
//
// All backends return [ErrNotFound] for missing documents; absence at
// this layer is an error, unlike inside the engine, because a caller
// asking for a named document expects it to exist.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/weftlabs/blockloom/pkg/blockgraph"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Document is a saved workspace.
type Document struct {
	ID        string                 `json:"id" bson:"_id"`
	Name      string                 `json:"name" bson:"name"`
	Graph     blockgraph.GraphRecord `json:"graph" bson:"graph"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time              `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for workspace persistence backends.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, replacing any existing one with the same
	// ID and bumping UpdatedAt.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all documents, most recently updated first.
	List(ctx context.Context) ([]*Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
