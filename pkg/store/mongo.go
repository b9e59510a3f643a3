package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

// MongoStore persists snapshots in a mongo collection, keyed by name with
// a unique index so concurrent saves of the same name upsert cleanly.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the mongo snapshot store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to mongo and ensures the name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "create snapshot index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Get retrieves a snapshot by name.
func (s *MongoStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	if err := errs.ValidateSnapshotName(name); err != nil {
		return nil, err
	}

	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "load snapshot %q", name)
	}
	return &snap, nil
}

// List returns all snapshots without their payloads, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "created_at": 1, "updated_at": 1}).
		SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list snapshots")
	}
	defer cur.Close(ctx)

	var out []Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode snapshots")
	}
	return out, nil
}

// Save stores a snapshot, keeping the ID and creation time of any existing
// snapshot with the same name.
func (s *MongoStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := errs.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}

	var prev Snapshot
	err := s.coll.FindOne(ctx, bson.M{"name": snap.Name}).Decode(&prev)
	if err == nil {
		snap.ID = prev.ID
		snap.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return errs.Wrap(errs.ErrCodeStorage, err, "load snapshot %q", snap.Name)
	}
	snap.UpdatedAt = time.Now().UTC()

	_, err = s.coll.ReplaceOne(ctx, bson.M{"name": snap.Name}, snap,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save snapshot %q", snap.Name)
	}
	return nil
}

// Delete removes a snapshot by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errs.ValidateSnapshotName(name); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete snapshot %q", name)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// Close disconnects from mongo.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
