package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/weftlabs/blockloom/pkg/errors"
)

// FileStore keeps one JSON file per document in a directory. Suited to
// the CLI and single-host deployments.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in the given directory,
// creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a document by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

// Put stores a document.
func (s *FileStore) Put(ctx context.Context, doc *Document) error {
	path, err := s.path(doc.ID)
	if err != nil {
		return err
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Delete removes a document.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// List returns all documents, most recently updated first.
func (s *FileStore) List(ctx context.Context) ([]*Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var docs []*Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		doc, err := s.Get(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		docs = append(docs, doc)
	}
	slices.SortFunc(docs, func(a, b *Document) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return docs, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// path maps a document ID to a file path, rejecting IDs that could
// escape the store directory.
func (s *FileStore) path(id string) (string, error) {
	if err := errors.ValidateWorkspaceID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
