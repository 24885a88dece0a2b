// internal/domain/models/response.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response lifecycle states. Draft responses are editable by their
// owner; final responses only by admins and editors.
const (
	StatusDraft = "draft"
	StatusFinal = "final"
)

// Response is a submitted survey document. SurveyID is a free-form
// reference (not a foreign key); answers and metadata are opaque JSON
// maps merged key-by-key on update, never replaced wholesale.
//
// Revision guards the read-modify-write cycle: every merge-update is a
// conditional write on the revision it read, so concurrent updates
// surface as conflicts instead of silently losing keys.
type Response struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SurveyID       string              `bson:"survey_id" json:"survey_id"`
	Answers        map[string]any      `bson:"answers" json:"answers"`
	Metadata       map[string]any      `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Status         string              `bson:"status" json:"status"` // draft | final
	UserID         primitive.ObjectID  `bson:"user_id" json:"user_id"`
	MunicipalityID *primitive.ObjectID `bson:"municipality_id,omitempty" json:"municipality_id,omitempty"`
	LastModifiedBy primitive.ObjectID  `bson:"last_modified_by" json:"last_modified_by"`
	Revision       int64               `bson:"revision" json:"revision"`
	FinalizedAt    *time.Time          `bson:"finalized_at,omitempty" json:"finalized_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
