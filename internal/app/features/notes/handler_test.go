package notes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notehub-app/notehub/internal/app/features/notes"
	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"github.com/notehub-app/notehub/internal/domain/models"
	"github.com/notehub-app/notehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type env struct {
	db      *mongo.Database
	blobs   *blob.Memory
	handler *notes.Handler
	fx      *testutil.Fixtures
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	blobs := blob.NewMemory()
	return &env{
		db:      db,
		blobs:   blobs,
		handler: notes.NewHandler(db, blobs, zap.NewNop()),
		fx:      testutil.NewFixtures(t, db),
	}
}

type noteJSON struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Text        string `json:"text"`
	Attachment  *struct {
		BlobKey     string `json:"blob_key"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	} `json:"attachment"`
}

func TestHandleList(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	other := e.fx.CreateWorkspace(ctx, owner, "Other", "other")

	older := e.fx.CreateNote(ctx, owner, ws.ID, "older", nil)
	newer := e.fx.CreateNote(ctx, owner, ws.ID, "newer", nil)
	e.fx.CreateNote(ctx, owner, other.ID, "elsewhere", nil)
	e.fx.CreateNote(ctx, primitive.NewObjectID(), ws.ID, "not mine", nil)

	// Workspace-scoped, newest first, owner's notes only.
	req := testutil.WithUser(httptest.NewRequest("GET", "/api/notes?workspace_id="+ws.ID.Hex(), nil), user)
	rec := httptest.NewRecorder()
	e.handler.HandleList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var list []noteJSON
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("scoped list has %d notes, want 2", len(list))
	}
	if list[0].ID != newer.ID.Hex() || list[1].ID != older.ID.Hex() {
		t.Errorf("order = [%s %s], want newest first", list[0].Text, list[1].Text)
	}

	// Without workspace_id the list spans all of the owner's workspaces.
	rec = httptest.NewRecorder()
	e.handler.HandleList(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/notes", nil), user))
	list = nil
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 3 {
		t.Errorf("owner-wide list has %d notes, want 3", len(list))
	}

	// Anonymous caller gets an empty list.
	rec = httptest.NewRecorder()
	e.handler.HandleList(rec, httptest.NewRequest("GET", "/api/notes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous status = %d, want 200", rec.Code)
	}
	list = nil
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 0 {
		t.Errorf("anonymous list = %+v, want empty", list)
	}
}

func TestHandleCreate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	ws := e.fx.CreateWorkspace(ctx, user.UserID(t), "Main", "main")
	e.blobs.Put("blob-1")

	req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/api/notes", map[string]any{
		"workspace_id": ws.ID.Hex(),
		"text":         "hello",
		"attachment": map[string]string{
			"blob_key":     "blob-1",
			"file_name":    "hello.txt",
			"content_type": "text/plain",
		},
	}), user)
	rec := httptest.NewRecorder()
	e.handler.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var n noteJSON
	testutil.DecodeJSON(t, rec, &n)
	if n.Text != "hello" || n.WorkspaceID != ws.ID.Hex() {
		t.Errorf("created note = %+v", n)
	}
	if n.Attachment == nil || n.Attachment.BlobKey != "blob-1" {
		t.Errorf("attachment = %+v, want blob-1", n.Attachment)
	}
}

func TestHandleCreate_Failures(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	ws := e.fx.CreateWorkspace(ctx, user.UserID(t), "Main", "main")
	foreign := e.fx.CreateWorkspace(ctx, primitive.NewObjectID(), "Foreign", "foreign")

	tests := []struct {
		name     string
		user     *testutil.TestUser
		body     map[string]any
		wantCode int
	}{
		{
			"unauthenticated",
			nil,
			map[string]any{"workspace_id": ws.ID.Hex(), "text": "x"},
			http.StatusUnauthorized,
		},
		{
			"missing workspace",
			&user,
			map[string]any{"workspace_id": primitive.NewObjectID().Hex(), "text": "x"},
			http.StatusNotFound,
		},
		{
			"foreign workspace",
			&user,
			map[string]any{"workspace_id": foreign.ID.Hex(), "text": "x"},
			http.StatusForbidden,
		},
		{
			"partial attachment",
			&user,
			map[string]any{
				"workspace_id": ws.ID.Hex(),
				"text":         "x",
				"attachment":   map[string]string{"blob_key": "blob-1"},
			},
			http.StatusBadRequest,
		},
		{
			"malformed workspace id",
			&user,
			map[string]any{"workspace_id": "nope", "text": "x"},
			http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/notes", tt.body)
			if tt.user != nil {
				req = testutil.WithUser(req, *tt.user)
			}
			rec := httptest.NewRecorder()
			e.handler.HandleCreate(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestHandleUpdate_TextOnlyKeepsAttachment(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-a")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "v1",
		&models.Attachment{BlobKey: "blob-a", FileName: "a.txt", ContentType: "text/plain"})

	req := testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(),
		map[string]any{"text": "v2"}), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got noteJSON
	testutil.DecodeJSON(t, rec, &got)
	if got.Text != "v2" {
		t.Errorf("text = %q, want v2", got.Text)
	}
	if got.Attachment == nil || got.Attachment.BlobKey != "blob-a" {
		t.Errorf("attachment = %+v, want untouched blob-a", got.Attachment)
	}
	if !e.blobs.Exists("blob-a") {
		t.Error("blob deleted by a text-only update")
	}
}

func TestHandleUpdate_ReplaceDeletesOldBlob(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-old")
	e.blobs.Put("blob-new")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "v1",
		&models.Attachment{BlobKey: "blob-old", FileName: "old.txt", ContentType: "text/plain"})

	req := testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(), map[string]any{
		"text": "v2",
		"attachment": map[string]string{
			"blob_key":     "blob-new",
			"file_name":    "new.txt",
			"content_type": "text/plain",
		},
	}), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got noteJSON
	testutil.DecodeJSON(t, rec, &got)
	if got.Attachment == nil || got.Attachment.BlobKey != "blob-new" {
		t.Errorf("attachment = %+v, want blob-new", got.Attachment)
	}
	if e.blobs.Exists("blob-old") {
		t.Error("displaced blob was not deleted")
	}
	if !e.blobs.Exists("blob-new") {
		t.Error("replacement blob is gone")
	}
	// Exactly one deletion, and only the displaced key.
	if deleted := e.blobs.Deleted(); len(deleted) != 1 || deleted[0] != "blob-old" {
		t.Errorf("deleted blobs = %v, want [blob-old]", deleted)
	}
}

func TestHandleUpdate_NullRemovesAttachment(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-a")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "v1",
		&models.Attachment{BlobKey: "blob-a", FileName: "a.txt", ContentType: "text/plain"})

	req := testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(),
		map[string]any{"text": "v2", "attachment": nil}), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got noteJSON
	testutil.DecodeJSON(t, rec, &got)
	if got.Attachment != nil {
		t.Errorf("attachment = %+v, want removed", got.Attachment)
	}
	if e.blobs.Exists("blob-a") {
		t.Error("removed attachment's blob still exists")
	}
}

func TestHandleUpdate_BlobFailureLeavesRecord(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-a")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "v1",
		&models.Attachment{BlobKey: "blob-a", FileName: "a.txt", ContentType: "text/plain"})
	e.blobs.FailDelete = true

	req := testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(),
		map[string]any{"text": "v2", "attachment": nil}), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	got, err := notestore.New(e.db).GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Text != "v1" || !got.HasAttachment() {
		t.Errorf("note patched despite blob failure: %+v", got)
	}
}

func TestHandleUpdate_Authz(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "private", nil)
	eve := testutil.NewTestUser("Eve", "eve@example.com")

	// Anonymous.
	req := testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(), map[string]any{"text": "x"})
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous update: status = %d, want 401", rec.Code)
	}

	// Non-owner.
	req = testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+n.ID.Hex(),
		map[string]any{"text": "x"}), eve)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec = httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-owner update: status = %d, want 403", rec.Code)
	}

	// Missing note.
	missing := primitive.NewObjectID().Hex()
	req = testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/api/notes/"+missing,
		map[string]any{"text": "x"}), eve)
	req = testutil.WithChiURLParam(req, "id", missing)
	rec = httptest.NewRecorder()
	e.handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing note update: status = %d, want 404", rec.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-a")
	n := e.fx.CreateNote(ctx, owner, ws.ID, "doomed",
		&models.Attachment{BlobKey: "blob-a", FileName: "a.txt", ContentType: "text/plain"})

	req := testutil.WithUser(httptest.NewRequest("DELETE", "/api/notes/"+n.ID.Hex(), nil), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	rec := httptest.NewRecorder()
	e.handler.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if _, err := notestore.New(e.db).GetByID(ctx, n.ID); err != notestore.ErrNotFound {
		t.Errorf("note still present after delete: %v", err)
	}
	if e.blobs.Exists("blob-a") {
		t.Error("attachment blob survived the delete")
	}

	// Deleting again is a 404: the note is gone.
	rec = httptest.NewRecorder()
	req = testutil.WithUser(httptest.NewRequest("DELETE", "/api/notes/"+n.ID.Hex(), nil), user)
	req = testutil.WithChiURLParam(req, "id", n.ID.Hex())
	e.handler.HandleDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestHandleUploadURL(t *testing.T) {
	e := newEnv(t)
	user := testutil.NewTestUser("Ada", "ada@example.com")

	rec := httptest.NewRecorder()
	e.handler.HandleUploadURL(rec, testutil.WithUser(httptest.NewRequest("POST", "/api/notes/upload-url", nil), user))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Key == "" || resp.URL == "" {
		t.Errorf("response = %+v, want key and url", resp)
	}

	rec = httptest.NewRecorder()
	e.handler.HandleUploadURL(rec, httptest.NewRequest("POST", "/api/notes/upload-url", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous upload-url: status = %d, want 401", rec.Code)
	}
}

func TestHandleFileURL(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.NewTestUser("Ada", "ada@example.com")
	owner := user.UserID(t)
	ws := e.fx.CreateWorkspace(ctx, owner, "Main", "main")
	e.blobs.Put("blob-a")
	e.fx.CreateNote(ctx, owner, ws.ID, "attached",
		&models.Attachment{BlobKey: "blob-a", FileName: "a.txt", ContentType: "text/plain"})

	rec := httptest.NewRecorder()
	e.handler.HandleFileURL(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/notes/file-url?key=blob-a", nil), user))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.URL == "" {
		t.Error("empty download URL")
	}

	// A key belonging to someone else's note does not resolve.
	eve := testutil.NewTestUser("Eve", "eve@example.com")
	rec = httptest.NewRecorder()
	e.handler.HandleFileURL(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/notes/file-url?key=blob-a", nil), eve))
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign key lookup: status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.handler.HandleFileURL(rec, testutil.WithUser(httptest.NewRequest("GET", "/api/notes/file-url", nil), user))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing key: status = %d, want 400", rec.Code)
	}
}
