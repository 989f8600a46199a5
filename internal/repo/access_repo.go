// Package repo – access-log collection operations.
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tbourn/go-fileshare-bot/internal/domain"
)

// RecordAccess counts one retrieval of a file: it increments the file's
// access counter and appends one access-log entry. The increment uses $inc,
// so concurrent retrievals cannot lose updates. The two writes are separate
// operations with no transaction; a partial failure (counter bumped but log
// missing, or vice versa) is accepted and reported as false.
func (s *Store) RecordAccess(ctx context.Context, fileID int, userID int64, username, firstName string) bool {
	_, err := s.files.UpdateOne(ctx,
		bson.M{"file_id": fileID},
		bson.M{"$inc": bson.M{"access_count": 1}},
	)
	if err != nil {
		log.Error().Err(err).Int("file_id", fileID).Msg("access counter update failed")
		return false
	}

	_, err = s.access.InsertOne(ctx, domain.AccessLogEntry{
		FileID:     fileID,
		UserID:     userID,
		Username:   username,
		FirstName:  firstName,
		AccessTime: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Int("file_id", fileID).Int64("user_id", userID).Msg("access log insert failed")
		return false
	}
	log.Info().Int("file_id", fileID).Int64("user_id", userID).Msg("file access recorded")
	return true
}
