// internal/domain/models/questionnaire.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types. Choice types (radio, checkbox, select) require options.
const (
	QuestionRadio     = "radio"
	QuestionCheckbox  = "checkbox"
	QuestionText      = "text"
	QuestionTextarea  = "textarea"
	QuestionSelect    = "select"
	QuestionNumber    = "number"
	QuestionImage     = "image"
	QuestionGPS       = "gps"
	QuestionGPSManual = "gps_manual"
)

// QuestionTypes is the canonical list of accepted question types.
var QuestionTypes = []string{
	QuestionRadio, QuestionCheckbox, QuestionText, QuestionTextarea,
	QuestionSelect, QuestionNumber, QuestionImage, QuestionGPS, QuestionGPSManual,
}

// ValidQuestionType reports whether s is a known question type.
func ValidQuestionType(s string) bool {
	switch s {
	case QuestionRadio, QuestionCheckbox, QuestionText, QuestionTextarea,
		QuestionSelect, QuestionNumber, QuestionImage, QuestionGPS, QuestionGPSManual:
		return true
	}
	return false
}

// ChoiceQuestionType reports whether s requires an options list.
func ChoiceQuestionType(s string) bool {
	return s == QuestionRadio || s == QuestionCheckbox || s == QuestionSelect
}

// Question is a single prompt within a questionnaire. Order is 1-based
// and sequential within its parent, assigned at creation time from the
// submission sequence.
type Question struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Text       string             `bson:"text" json:"text"`
	Type       string             `bson:"type" json:"type"`
	Options    []string           `bson:"options,omitempty" json:"options,omitempty"`
	IsRequired bool               `bson:"is_required" json:"is_required"`
	Order      int                `bson:"order" json:"order"`
}

// Questionnaire is a survey template. Questions are embedded so the
// parent and its children are written under one creation boundary.
type Questionnaire struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	Questions   []Question         `bson:"questions" json:"questions"`
	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
