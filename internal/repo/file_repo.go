// Package repo – file collection operations.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tbourn/go-fileshare-bot/internal/domain"
)

// SaveFile persists metadata for a newly archived file. A pre-existing
// document with the same file id is left untouched. Reports true only when a
// document was created; database failures are logged and reported as false.
func (s *Store) SaveFile(ctx context.Context, fileID int, uploaderID int64, uploaderName, fileType string) bool {
	err := s.files.FindOne(ctx, bson.M{"file_id": fileID}).Err()
	if err == nil {
		return false
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Error().Err(err).Int("file_id", fileID).Msg("file lookup failed")
		return false
	}

	_, err = s.files.InsertOne(ctx, domain.File{
		FileID:       fileID,
		UploaderID:   uploaderID,
		UploaderName: uploaderName,
		FileType:     fileType,
		UploadDate:   time.Now().UTC(),
		AccessCount:  0,
	})
	if err != nil {
		log.Error().Err(err).Int("file_id", fileID).Msg("file insert failed")
		return false
	}
	log.Info().Int("file_id", fileID).Msg("file saved")
	return true
}

// GetFile loads a file's metadata by its archive-channel message id.
// Returns ErrNotFound when no such file exists.
func (s *Store) GetFile(ctx context.Context, fileID int) (*domain.File, error) {
	var f domain.File
	err := s.files.FindOne(ctx, bson.M{"file_id": fileID}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
