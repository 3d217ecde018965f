// Package workspacestore wraps the workspaces collection.
package workspacestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicatePath means the unique path index rejected an insert or
	// update. With the single-attempt suffix policy this is how a
	// suffixed-path collision surfaces.
	ErrDuplicatePath = errors.New("a workspace with this path already exists")
	ErrNotFound      = errors.New("workspace not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workspaces")}
}

// Create inserts a new workspace. ID, NameCI, and timestamps are assigned
// here; OwnerID, Name, and Path come from the caller.
func (s *Store) Create(ctx context.Context, ws models.Workspace) (models.Workspace, error) {
	now := time.Now().UTC()
	ws.ID = primitive.NewObjectID()
	ws.NameCI = text.Fold(ws.Name)
	ws.CreatedAt = now
	ws.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, ws)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Workspace{}, ErrDuplicatePath
		}
		return models.Workspace{}, err
	}
	return ws, nil
}

// GetByID retrieves a workspace by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Workspace, error) {
	var ws models.Workspace
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ws)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Workspace{}, ErrNotFound
		}
		return models.Workspace{}, err
	}
	return ws, nil
}

// ListByOwner returns all workspaces owned by the given user.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Workspace, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	workspaces := []models.Workspace{}
	if err := cur.All(ctx, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// PathExists reports whether any workspace already uses the given path.
// The by-path unique index backs this lookup.
func (s *Store) PathExists(ctx context.Context, path string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"path": path},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Rename updates the display name. The path is deliberately not recomputed:
// it is stable after creation.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPath assigns a path to a workspace that lacks one (migrate op).
func (s *Store) SetPath(ctx context.Context, id primitive.ObjectID, path string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"path":       path,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicatePath
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMissingPath returns the owner's workspaces that have no path yet
// (records predating path assignment).
func (s *Store) ListMissingPath(ctx context.Context, ownerID primitive.ObjectID) ([]models.Workspace, error) {
	filter := bson.M{
		"owner_id": ownerID,
		"$or": []bson.M{
			{"path": bson.M{"$exists": false}},
			{"path": ""},
		},
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	workspaces := []models.Workspace{}
	if err := cur.All(ctx, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Delete removes a workspace by ID. Returns the deleted count so callers can
// treat a missing id as a no-op.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the workspaces collection.
//
// The partial unique index on path enforces system-wide path uniqueness at
// the storage layer (closing the check-then-insert race) while exempting
// legacy records that have no path yet.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "path", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_workspace_path").
				SetPartialFilterExpression(bson.M{"path": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_workspace_owner"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
