package workspaces

import (
	"time"

	"github.com/notehub-app/notehub/internal/domain/models"
)

// workspaceResponse is the public view of a workspace.
type workspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(ws models.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:        ws.ID.Hex(),
		Name:      ws.Name,
		Path:      ws.Path,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

// createRequest is the body for POST /api/workspaces.
type createRequest struct {
	Name string `json:"name"`
}

// updateRequest is the body for PATCH /api/workspaces/{id}.
type updateRequest struct {
	Name string `json:"name"`
}

// deleteResponse reports what the cascading delete removed.
type deleteResponse struct {
	Deleted      bool  `json:"deleted"`
	NotesDeleted int64 `json:"notes_deleted"`
}

// migrateResponse reports how many legacy workspaces received a path.
type migrateResponse struct {
	Migrated int `json:"migrated"`
}
