package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	userstore "github.com/notehub-app/notehub/internal/app/store/users"
	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestDB connects to the test MongoDB instance and returns a database
// with a unique name, dropped when the test finishes. The test is skipped
// when no Mongo is reachable, so the suite stays runnable on machines without
// a local instance.
//
// Set NOTEHUB_TEST_MONGO_URI to point somewhere other than localhost.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("NOTEHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo unavailable at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo unreachable at %s: %v", uri, err)
	}

	db := client.Database(fmt.Sprintf("notehub_test_%s", primitive.NewObjectID().Hex()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	// Indexes are part of the schema the handlers rely on (unique path).
	setupCtx, setupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer setupCancel()
	if err := workspacestore.New(db).EnsureIndexes(setupCtx); err != nil {
		t.Fatalf("ensure workspace indexes: %v", err)
	}
	if err := notestore.New(db).EnsureIndexes(setupCtx); err != nil {
		t.Fatalf("ensure note indexes: %v", err)
	}
	if err := userstore.New(db).EnsureIndexes(setupCtx); err != nil {
		t.Fatalf("ensure user indexes: %v", err)
	}

	return db
}

// TestContext returns a context with a generous timeout for test DB calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

// Fixtures creates test records directly in the given database.
type Fixtures struct {
	t  *testing.T
	db *mongo.Database
}

// NewFixtures wraps db with fixture helpers.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// CreateWorkspace inserts a workspace owned by ownerID. An empty path models
// a legacy record from before paths existed.
func (f *Fixtures) CreateWorkspace(ctx context.Context, ownerID primitive.ObjectID, name, path string) models.Workspace {
	f.t.Helper()

	now := time.Now().UTC()
	ws := models.Workspace{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      name,
		NameCI:    text.Fold(name),
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("workspaces").InsertOne(ctx, ws); err != nil {
		f.t.Fatalf("failed to create test workspace: %v", err)
	}
	return ws
}

// CreateNote inserts a note. attachment may be nil.
func (f *Fixtures) CreateNote(ctx context.Context, ownerID, workspaceID primitive.ObjectID, textBody string, attachment *models.Attachment) models.Note {
	f.t.Helper()

	now := time.Now().UTC()
	n := models.Note{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		WorkspaceID: workspaceID,
		Text:        textBody,
		Attachment:  attachment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("notes").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test note: %v", err)
	}
	return n
}
