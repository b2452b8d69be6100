// Package mongostore implements workspace persistence on MongoDB, for
// the hosted multi-user deployment. Documents serialize through the
// bson tags on [store.Document] and the graph record types.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weftlabs/blockloom/pkg/store"
)

// Config configures the MongoDB connection.
type Config struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "blockloom"
	Collection string // defaults to "workspaces"
}

// Store is a MongoDB-backed workspace store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = "blockloom"
	}
	if cfg.Collection == "" {
		cfg.Collection = "workspaces"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, id string) (*store.Document, error) {
	var doc store.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Put upserts a document by ID.
func (s *Store) Put(ctx context.Context, doc *store.Document) error {
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc,
		options.Replace().SetUpsert(true))
	return err
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns all documents, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*store.Document, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"updated_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []*store.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)
