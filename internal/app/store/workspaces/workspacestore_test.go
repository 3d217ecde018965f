package workspacestore_test

import (
	"errors"
	"testing"

	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/domain/models"
	"github.com/notehub-app/notehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	ws, err := store.Create(ctx, models.Workspace{
		OwnerID: owner,
		Name:    "My Notes",
		Path:    "my-notes",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ws.ID.IsZero() {
		t.Fatal("Create did not assign an ID")
	}
	if ws.NameCI != "my notes" {
		t.Errorf("NameCI = %q, want %q", ws.NameCI, "my notes")
	}
	if ws.CreatedAt.IsZero() || ws.UpdatedAt.IsZero() {
		t.Error("Create did not assign timestamps")
	}

	got, err := store.GetByID(ctx, ws.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "My Notes" || got.Path != "my-notes" || got.OwnerID != owner {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreate_DuplicatePath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Workspace{OwnerID: owner, Name: "First", Path: "shared"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same path from a different owner still collides: paths are unique
	// across the whole system.
	_, err := store.Create(ctx, models.Workspace{OwnerID: primitive.NewObjectID(), Name: "Second", Path: "shared"})
	if !errors.Is(err, workspacestore.ErrDuplicatePath) {
		t.Fatalf("Create with duplicate path: got %v, want ErrDuplicatePath", err)
	}
}

func TestCreate_EmptyPathsDoNotCollide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	for _, name := range []string{"Legacy One", "Legacy Two"} {
		if _, err := store.Create(ctx, models.Workspace{OwnerID: owner, Name: name}); err != nil {
			t.Fatalf("Create %q without path failed: %v", name, err)
		}
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, workspacestore.ErrNotFound) {
		t.Fatalf("GetByID on missing id: got %v, want ErrNotFound", err)
	}
}

func TestListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	fx.CreateWorkspace(ctx, owner, "Mine A", "mine-a")
	fx.CreateWorkspace(ctx, owner, "Mine B", "mine-b")
	fx.CreateWorkspace(ctx, other, "Theirs", "theirs")

	got, err := store.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByOwner returned %d workspaces, want 2", len(got))
	}

	empty, err := store.ListByOwner(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ListByOwner for unknown owner failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByOwner for unknown owner = %v, want empty non-nil slice", empty)
	}
}

func TestPathExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateWorkspace(ctx, primitive.NewObjectID(), "Taken", "taken")

	exists, err := store.PathExists(ctx, "taken")
	if err != nil {
		t.Fatalf("PathExists failed: %v", err)
	}
	if !exists {
		t.Error("PathExists(taken) = false, want true")
	}

	exists, err = store.PathExists(ctx, "free")
	if err != nil {
		t.Fatalf("PathExists failed: %v", err)
	}
	if exists {
		t.Error("PathExists(free) = true, want false")
	}
}

func TestRename_DoesNotTouchPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fx.CreateWorkspace(ctx, primitive.NewObjectID(), "Old Name", "old-name")

	if err := store.Rename(ctx, ws.ID, "New Name"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	got, err := store.GetByID(ctx, ws.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name = %q, want %q", got.Name, "New Name")
	}
	if got.Path != "old-name" {
		t.Errorf("Path = %q after rename, want unchanged %q", got.Path, "old-name")
	}

	if err := store.Rename(ctx, primitive.NewObjectID(), "Whatever"); !errors.Is(err, workspacestore.ErrNotFound) {
		t.Errorf("Rename on missing id: got %v, want ErrNotFound", err)
	}
}

func TestSetPathAndListMissingPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	legacy := fx.CreateWorkspace(ctx, owner, "Legacy", "")
	fx.CreateWorkspace(ctx, owner, "Modern", "modern")

	missing, err := store.ListMissingPath(ctx, owner)
	if err != nil {
		t.Fatalf("ListMissingPath failed: %v", err)
	}
	if len(missing) != 1 || missing[0].ID != legacy.ID {
		t.Fatalf("ListMissingPath = %+v, want only the legacy workspace", missing)
	}
	if missing[0].HasPath() {
		t.Errorf("ListMissingPath returned a workspace with a path: %q", missing[0].Path)
	}

	if err := store.SetPath(ctx, legacy.ID, "legacy"); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	if got, err := store.GetByID(ctx, legacy.ID); err != nil || !got.HasPath() {
		t.Errorf("workspace still lacks a path after SetPath (err %v)", err)
	}
	missing, err = store.ListMissingPath(ctx, owner)
	if err != nil {
		t.Fatalf("ListMissingPath failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("ListMissingPath after SetPath = %+v, want empty", missing)
	}

	// Assigning a taken path hits the unique index.
	other := fx.CreateWorkspace(ctx, owner, "Other", "")
	if err := store.SetPath(ctx, other.ID, "modern"); !errors.Is(err, workspacestore.ErrDuplicatePath) {
		t.Errorf("SetPath with taken path: got %v, want ErrDuplicatePath", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fx.CreateWorkspace(ctx, primitive.NewObjectID(), "Doomed", "doomed")

	n, err := store.Delete(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Delete deleted %d, want 1", n)
	}

	n, err = store.Delete(ctx, ws.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Delete of missing workspace deleted %d, want 0", n)
	}
}
