// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	notestore "github.com/notehub-app/notehub/internal/app/store/notes"
	userstore "github.com/notehub-app/notehub/internal/app/store/users"
	workspacestore "github.com/notehub-app/notehub/internal/app/store/workspaces"
	"github.com/notehub-app/notehub/internal/app/system/blob"
	"github.com/notehub-app/notehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and builds the blob-store
// client. The object store is not dialed here; EnsureBucket in Startup is the
// first round trip.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	store, err := blob.NewMinio(blob.Config{
		Endpoint:  appCfg.BlobEndpoint,
		AccessKey: appCfg.BlobAccessKey,
		SecretKey: appCfg.BlobSecretKey,
		Bucket:    appCfg.BlobBucket,
		UseSSL:    appCfg.BlobUseSSL,
		URLExpiry: appCfg.BlobURLExpiry,
	}, logger)
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Blob:          store,
	}, nil
}

// EnsureSchema creates the collection indexes the handlers rely on, most
// importantly the unique index on workspace paths.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	if err := workspacestore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("workspace indexes: %w", err)
	}
	if err := notestore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("note indexes: %w", err)
	}
	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	logger.Info("database indexes ensured")
	return nil
}
