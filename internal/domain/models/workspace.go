package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace is a named, owned collection of notes addressable by a unique
// URL-safe path.
//
// Path is derived from Name at creation time (lowercase alphanumerics and
// single hyphens) and never recomputed afterward; renaming a workspace leaves
// its path untouched. Records created before paths existed have an empty Path
// until the migrate operation backfills them.
type Workspace struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Owner of the workspace. Every mutation checks caller == OwnerID.
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	// Display name for the workspace
	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"` // Case-insensitive for search

	// URL-safe slug, unique across all workspaces (unique index)
	Path string `bson:"path,omitempty" json:"path,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPath reports whether the workspace has been assigned a path.
// Legacy records predating path assignment return false until migrated.
func (w Workspace) HasPath() bool {
	return w.Path != ""
}
