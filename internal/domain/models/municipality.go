// internal/domain/models/municipality.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Municipality is reference data responses may point at. Deletion is a
// soft isActive flip so historical responses keep a resolvable target;
// admins can restore.
type Municipality struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code     string             `bson:"code" json:"code"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	District string             `bson:"district" json:"district"`
	IsActive bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
