// internal/domain/models/file.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is the metadata record for an uploaded image. Physical bytes
// live outside the database, addressed by convention:
// originals/{id}{ext} and, when optimization succeeded,
// optimized/{id}.jpg. A record whose backing file is missing is a
// legitimate state (crash between insert and rename), not corruption.
type File struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResponseID primitive.ObjectID `bson:"response_id" json:"response_id"`
	Filename   string             `bson:"filename" json:"filename"` // original upload name
	MimeType   string             `bson:"mime_type" json:"mime_type"`
	FileSize   int64              `bson:"file_size" json:"file_size"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
