// Package notestore wraps the notes collection.
package notestore

import (
	"context"
	"errors"
	"time"

	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("note not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notes")}
}

// newestFirst walks _id descending; ObjectIDs are time-ordered, so this is
// most-recently-created first.
var newestFirst = options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

// Create inserts a new note. ID and timestamps are assigned here.
func (s *Store) Create(ctx context.Context, n models.Note) (models.Note, error) {
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = now
	n.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// GetByID retrieves a note by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Note, error) {
	var n models.Note
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// ListByWorkspace returns a workspace's notes, newest first, restricted to
// the given owner (reads are always caller-scoped).
func (s *Store) ListByWorkspace(ctx context.Context, workspaceID, ownerID primitive.ObjectID) ([]models.Note, error) {
	return s.find(ctx, bson.M{"workspace_id": workspaceID, "owner_id": ownerID})
}

// ListByOwner returns all of the owner's notes across workspaces, newest
// first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Note, error) {
	return s.find(ctx, bson.M{"owner_id": ownerID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Note, error) {
	cur, err := s.c.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notes := []models.Note{}
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetByBlobKey finds the owner's note whose attachment references key.
func (s *Store) GetByBlobKey(ctx context.Context, ownerID primitive.ObjectID, key string) (models.Note, error) {
	var n models.Note
	err := s.c.FindOne(ctx, bson.M{
		"owner_id":            ownerID,
		"attachment.blob_key": key,
	}).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// Update patches a note's text and attachment in one write.
//
// attachment semantics: nil + removeAttachment=false leaves the stored
// attachment untouched; nil + removeAttachment=true clears it; non-nil
// replaces it. OwnerID and WorkspaceID are never part of the patch, so the
// owner is immutable by construction.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, text string, attachment *models.Attachment, removeAttachment bool) error {
	set := bson.M{
		"text":       text,
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	switch {
	case attachment != nil:
		set["attachment"] = attachment
	case removeAttachment:
		update["$unset"] = bson.M{"attachment": ""}
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a note by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByWorkspace returns how many notes live in the workspace.
func (s *Store) CountByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"workspace_id": workspaceID})
}

// EnsureIndexes creates indexes for the notes collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Workspace note lists, newest first
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_notes_workspace_id"),
		},
		// Cross-workspace lists for a single owner
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_notes_owner_id"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
