// Package catalog publishes finished atlas maps to MongoDB so other tools
// in an asset pipeline can look up frame positions without shipping map
// files around. Records are keyed by atlas name; republishing replaces the
// previous record.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/mapfile"
)

const (
	defaultDatabase   = "texpack"
	defaultCollection = "atlases"

	connectTimeout = 10 * time.Second
)

// Record is one published atlas.
type Record struct {
	Name        string         `bson:"name"`
	BuildID     string         `bson:"build_id"`
	Width       int            `bson:"width"`
	Height      int            `bson:"height"`
	Format      string         `bson:"format"`
	Checksum    string         `bson:"checksum"`
	Textures    []TextureEntry `bson:"textures"`
	PublishedAt time.Time      `bson:"published_at"`
}

// TextureEntry is one texture's frames inside a Record.
type TextureEntry struct {
	Name   string   `bson:"name"`
	Frames [][4]int `bson:"frames"`
}

// Store wraps the MongoDB collection holding published atlases.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials MongoDB and verifies the connection. An empty database
// name selects the default.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connecting to catalog at %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pinging catalog at %s", uri)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(defaultCollection),
	}, nil
}

// Publish upserts a record under its atlas name.
func (s *Store) Publish(ctx context.Context, rec Record) error {
	if rec.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "atlas name must not be empty")
	}
	if rec.PublishedAt.IsZero() {
		rec.PublishedAt = time.Now().UTC()
	}

	filter := bson.M{"name": rec.Name}
	update := bson.M{"$set": rec}
	opts := options.Update().SetUpsert(true)
	if _, err := s.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "publishing atlas %q", rec.Name)
	}
	return nil
}

// Get fetches a published atlas by name.
func (s *Store) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "atlas %q not published", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "fetching atlas %q", name)
	}
	return &rec, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// NewRecord builds a Record from a parsed map file and the raw map bytes
// used for the checksum.
func NewRecord(name, buildID string, m *mapfile.Map, raw []byte) Record {
	textures := make([]TextureEntry, 0, len(m.Textures))
	for _, t := range m.Textures {
		textures = append(textures, TextureEntry{Name: t.Name, Frames: t.Frames})
	}
	return Record{
		Name:        name,
		BuildID:     buildID,
		Width:       m.Width,
		Height:      m.Height,
		Format:      m.Format,
		Checksum:    checksum(raw),
		Textures:    textures,
		PublishedAt: time.Now().UTC(),
	}
}

// checksum returns the SHA-256 hex digest of the raw map bytes, letting
// consumers detect a map file that drifted from its published record.
func checksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
