// Package domain defines the persistence models for users, files, and
// access-log entries. These types are mapped with bson tags and form the
// core data layer of the file-share bot.
package domain

import "time"

// User represents a Telegram user who interacted with the bot at least once.
// Users are created on first contact and never updated or deleted.
//
// Fields:
//   - UserID: Telegram user id, unique key of the collection.
//   - Username: Telegram @handle, empty when the account has none.
//   - FirstName: display name at the time of first contact.
//   - JoinDate: UTC timestamp of the first observed interaction.
type User struct {
	UserID    int64     `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username,omitempty" json:"username,omitempty"`
	FirstName string    `bson:"first_name,omitempty" json:"first_name,omitempty"`
	JoinDate  time.Time `bson:"join_date" json:"join_date"`
}

// File represents an uploaded file archived in the private channel. The
// archive-channel message id doubles as the file id embedded in share links.
//
// Fields:
//   - FileID: message id of the forwarded copy in the archive channel; unique.
//   - UploaderID / UploaderName: who uploaded the file.
//   - FileType: MIME type for documents/videos/audio, "photo" for photos.
//   - UploadDate: UTC timestamp of the upload.
//   - AccessCount: number of successful retrievals; incremented atomically,
//     never decremented.
type File struct {
	FileID       int       `bson:"file_id" json:"file_id"`
	UploaderID   int64     `bson:"uploader_id" json:"uploader_id"`
	UploaderName string    `bson:"uploader_name,omitempty" json:"uploader_name,omitempty"`
	FileType     string    `bson:"file_type,omitempty" json:"file_type,omitempty"`
	UploadDate   time.Time `bson:"upload_date" json:"upload_date"`
	AccessCount  int64     `bson:"access_count" json:"access_count"`
}

// AccessLogEntry records one successful retrieval of a file. Entries are
// append-only; the file's AccessCount should best-effort equal the number of
// entries referencing it (no transactional guarantee).
type AccessLogEntry struct {
	FileID     int       `bson:"file_id" json:"file_id"`
	UserID     int64     `bson:"user_id" json:"user_id"`
	Username   string    `bson:"username,omitempty" json:"username,omitempty"`
	FirstName  string    `bson:"first_name,omitempty" json:"first_name,omitempty"`
	AccessTime time.Time `bson:"access_time" json:"access_time"`
}
