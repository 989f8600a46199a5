// Package repo implements the data persistence layer for domain entities,
// backed by the official MongoDB driver. This file contains connection
// bootstrapping and the Store wrapping the three bot collections.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving workflow rules to the bot handlers. Per the
// persistence contract, write operations never propagate database errors to
// callers: failures are logged and reported as a boolean, so a database
// outage degrades features instead of crashing the process.
package repo

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tbourn/go-fileshare-bot/internal/config"
)

// ErrNotFound is returned by read operations when no document matches.
var ErrNotFound = errors.New("not found")

// Collection names within the bot database.
const (
	usersCollection  = "users"
	filesCollection  = "files"
	accessCollection = "file_access"
)

// Store provides access to the users, files, and access-log collections.
// It is safe for concurrent use.
type Store struct {
	users  *mongo.Collection
	files  *mongo.Collection
	access *mongo.Collection
}

// NewStore wraps the bot collections of db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		users:  db.Collection(usersCollection),
		files:  db.Collection(filesCollection),
		access: db.Collection(accessCollection),
	}
}

// Connect establishes the MongoDB connection and verifies it with a ping.
// A failure here is meant to be fatal at startup: the process refuses to run
// without a reachable store.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.Info().Str("database", cfg.Database).Msg("connected to mongodb")
	return client, NewStore(client.Database(cfg.Database)), nil
}
