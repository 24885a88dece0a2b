// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Admins manage everything, editors manage their
// own team's users and responses, users manage only what they own.
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// User represents admins, editors, and field users.
//
// TeamID is optional: admins typically have no team, and users may be
// created before being assigned to one. PasswordHash is never serialized;
// credential checks live in system/authutil.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email        string              `bson:"email" json:"email"`
	Name         string              `bson:"name" json:"name"`
	NameCI       string              `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string              `bson:"password_hash" json:"-"`
	Role         string              `bson:"role" json:"role"` // user | editor | admin
	TeamID       *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleEditor || s == RoleAdmin
}
