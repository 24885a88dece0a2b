// Package responsepolicy provides authorization policies for survey
// responses.
//
// Authorization rules:
//   - Admins can view and manage all responses
//   - Editors can manage their own responses and responses owned by
//     members of their own team
//   - Users can only manage their own responses
//
// Denied access is always Forbidden; existence is never masked as 404.
package responsepolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
)

// CanManage reports whether the principal may view or modify a response
// owned by ownerID whose owner sits on ownerTeamID. Pure predicate; the
// caller resolves the owner's team (and fails closed when it cannot).
func CanManage(p auth.Principal, ownerID primitive.ObjectID, ownerTeamID *primitive.ObjectID) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEditor:
		if p.ID == ownerID {
			return true
		}
		if p.TeamID == nil || ownerTeamID == nil {
			return false
		}
		return *p.TeamID == *ownerTeamID
	case models.RoleUser:
		return p.ID == ownerID
	default:
		return false
	}
}

// ListScope represents the set of response owners a principal can list.
type ListScope struct {
	// CanList indicates whether the principal can list responses at all.
	CanList bool
	// All indicates the principal sees every response (admins).
	All bool
	// UserIDs restricts listing to responses owned by these users when
	// All is false.
	UserIDs []primitive.ObjectID
}

// ListScopeFor resolves the principal's listing scope. Editors get their
// own ID plus every member of their team; a failed team lookup is
// returned as an error rather than silently widening or narrowing the
// scope.
func ListScopeFor(ctx context.Context, db *mongo.Database, p auth.Principal) (ListScope, error) {
	switch p.Role {
	case models.RoleAdmin:
		return ListScope{CanList: true, All: true}, nil
	case models.RoleEditor:
		ids := []primitive.ObjectID{p.ID}
		if p.TeamID != nil {
			memberIDs, err := teamMemberIDs(ctx, db, *p.TeamID)
			if err != nil {
				return ListScope{}, err
			}
			for _, id := range memberIDs {
				if id != p.ID {
					ids = append(ids, id)
				}
			}
		}
		return ListScope{CanList: true, UserIDs: ids}, nil
	case models.RoleUser:
		return ListScope{CanList: true, UserIDs: []primitive.ObjectID{p.ID}}, nil
	default:
		return ListScope{CanList: false}, nil
	}
}

// OwnerInfo is the minimal owner data needed for an access decision.
type OwnerInfo struct {
	ID     primitive.ObjectID
	TeamID *primitive.ObjectID
}

// FetchOwnerInfo loads the owner's team for an access check. A missing
// owner returns nil: the response is orphaned and only admins keep
// access (CanManage fails closed on a nil owner team).
func FetchOwnerInfo(ctx context.Context, db *mongo.Database, ownerID primitive.ObjectID) (*OwnerInfo, error) {
	var result struct {
		ID     primitive.ObjectID  `bson:"_id"`
		TeamID *primitive.ObjectID `bson:"team_id"`
	}

	proj := options.FindOne().SetProjection(bson.M{"_id": 1, "team_id": 1})
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": ownerID}, proj).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &OwnerInfo{ID: result.ID, TeamID: result.TeamID}, nil
}

// CheckAccess combines FetchOwnerInfo and CanManage for one response.
//
// Returns:
//   - (true, nil) if the principal can manage the response
//   - (false, nil) if not (including an unresolvable owner — fail closed)
//   - (false, err) on database error
func CheckAccess(ctx context.Context, db *mongo.Database, p auth.Principal, resp models.Response) (bool, error) {
	if p.Role == models.RoleAdmin {
		return true, nil
	}
	if p.ID == resp.UserID {
		return true, nil
	}
	if p.Role != models.RoleEditor {
		return false, nil
	}
	owner, err := FetchOwnerInfo(ctx, db, resp.UserID)
	if err != nil {
		return false, err
	}
	if owner == nil {
		return false, nil
	}
	return CanManage(p, owner.ID, owner.TeamID), nil
}

func teamMemberIDs(ctx context.Context, db *mongo.Database, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	proj := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := db.Collection("users").Find(ctx, bson.M{"team_id": teamID}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
