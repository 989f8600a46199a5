// Package repo – user collection operations.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tbourn/go-fileshare-bot/internal/domain"
)

// SaveUser inserts a User document on first contact. It reports true only
// when a new document was created; an already-known user or any database
// failure yields false. The existence check and the insert are two separate
// operations, matching the idempotent "if absent" contract.
func (s *Store) SaveUser(ctx context.Context, userID int64, username, firstName string) bool {
	err := s.users.FindOne(ctx, bson.M{"user_id": userID}).Err()
	if err == nil {
		return false // already known
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Error().Err(err).Int64("user_id", userID).Msg("user lookup failed")
		return false
	}

	_, err = s.users.InsertOne(ctx, domain.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		JoinDate:  time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("user insert failed")
		return false
	}
	log.Info().Int64("user_id", userID).Msg("user saved")
	return true
}

// CountUsers returns the total number of known users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.D{})
}

// ListUserIDs returns the ids of every known user, in collection order.
// Used by the broadcast command.
func (s *Store) ListUserIDs(ctx context.Context) ([]int64, error) {
	opts := options.Find().SetProjection(bson.M{"user_id": 1, "_id": 0})
	cur, err := s.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []int64
	for cur.Next(ctx) {
		var row struct {
			UserID int64 `bson:"user_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.UserID)
	}
	return ids, cur.Err()
}
