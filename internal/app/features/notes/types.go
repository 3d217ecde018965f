package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/notehub-app/notehub/internal/domain/models"
)

// attachmentPayload is the attachment metadata as it crosses the API. A note
// carries either all three fields or no attachment at all.
type attachmentPayload struct {
	BlobKey     string `json:"blob_key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

var errPartialAttachment = errors.New("attachment requires blob_key, file_name, and content_type together")

// validate enforces the all-or-nothing rule on a present attachment.
func (a *attachmentPayload) validate() error {
	if a.BlobKey == "" || a.FileName == "" || a.ContentType == "" {
		return errPartialAttachment
	}
	return nil
}

func (a *attachmentPayload) toModel() *models.Attachment {
	return &models.Attachment{
		BlobKey:     a.BlobKey,
		FileName:    a.FileName,
		ContentType: a.ContentType,
	}
}

// optionalAttachment distinguishes the three PATCH states: field absent
// (leave the attachment alone), explicit null (remove it), and an object
// (replace it).
type optionalAttachment struct {
	Set   bool
	Value *attachmentPayload
}

func (o *optionalAttachment) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	o.Value = &attachmentPayload{}
	return json.Unmarshal(data, o.Value)
}

// createRequest is the body for POST /api/notes.
type createRequest struct {
	WorkspaceID string             `json:"workspace_id"`
	Text        string             `json:"text"`
	Attachment  *attachmentPayload `json:"attachment,omitempty"`
}

// updateRequest is the body for PATCH /api/notes/{id}. Text is the full
// replacement body; the attachment field is tri-state.
type updateRequest struct {
	Text       string             `json:"text"`
	Attachment optionalAttachment `json:"attachment"`
}

// noteResponse is the public view of a note.
type noteResponse struct {
	ID          string             `json:"id"`
	WorkspaceID string             `json:"workspace_id"`
	Text        string             `json:"text"`
	Attachment  *attachmentPayload `json:"attachment,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toResponse(n models.Note) noteResponse {
	resp := noteResponse{
		ID:          n.ID.Hex(),
		WorkspaceID: n.WorkspaceID.Hex(),
		Text:        n.Text,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.HasAttachment() {
		resp.Attachment = &attachmentPayload{
			BlobKey:     n.Attachment.BlobKey,
			FileName:    n.Attachment.FileName,
			ContentType: n.Attachment.ContentType,
		}
	}
	return resp
}

// uploadURLResponse is the body for POST /api/notes/upload-url.
type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// fileURLResponse is the body for GET /api/notes/file-url.
type fileURLResponse struct {
	URL string `json:"url"`
}
