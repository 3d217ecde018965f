package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment is the file metadata carried by a note. A note has either a
// complete attachment or none; the three fields always travel together.
type Attachment struct {
	BlobKey     string `bson:"blob_key" json:"blob_key"`
	FileName    string `bson:"file_name" json:"file_name"`
	ContentType string `bson:"content_type" json:"content_type"`
}

// Note is a piece of text in a workspace, optionally with one attachment.
type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	Text        string             `bson:"text" json:"text"`
	Attachment  *Attachment        `bson:"attachment,omitempty" json:"attachment,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasAttachment reports whether the note carries an attachment.
func (n *Note) HasAttachment() bool {
	return n.Attachment != nil
}
