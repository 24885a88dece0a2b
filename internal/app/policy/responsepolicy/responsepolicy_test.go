package responsepolicy_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/surveyhub/internal/app/policy/responsepolicy"
	"github.com/dalemusser/surveyhub/internal/app/system/auth"
	"github.com/dalemusser/surveyhub/internal/domain/models"
	"github.com/dalemusser/surveyhub/internal/testutil"
)

func TestCanManage_Admin(t *testing.T) {
	admin := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	owner := primitive.NewObjectID()

	if !responsepolicy.CanManage(admin, owner, nil) {
		t.Error("admin must manage any response")
	}
}

func TestCanManage_UserOwnOnly(t *testing.T) {
	user := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleUser}

	if !responsepolicy.CanManage(user, user.ID, nil) {
		t.Error("user must manage their own response")
	}
	if responsepolicy.CanManage(user, primitive.NewObjectID(), nil) {
		t.Error("user must not manage someone else's response")
	}
}

func TestCanManage_EditorTeamScope(t *testing.T) {
	fieldTeam := primitive.NewObjectID()
	otherTeam := primitive.NewObjectID()
	editor := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor, TeamID: &fieldTeam}
	ownerID := primitive.NewObjectID()

	// Same team: allowed.
	if !responsepolicy.CanManage(editor, ownerID, &fieldTeam) {
		t.Error("editor must manage a same-team member's response")
	}
	// Different team: denied.
	if responsepolicy.CanManage(editor, ownerID, &otherTeam) {
		t.Error("editor must not manage another team's response")
	}
	// Owner without a team: denied.
	if responsepolicy.CanManage(editor, ownerID, nil) {
		t.Error("editor must not manage a team-less owner's response")
	}
	// Own response: allowed regardless of teams.
	if !responsepolicy.CanManage(editor, editor.ID, nil) {
		t.Error("editor must manage their own response")
	}
}

func TestCanManage_TeamlessEditor(t *testing.T) {
	editor := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor}
	teamID := primitive.NewObjectID()

	if responsepolicy.CanManage(editor, primitive.NewObjectID(), &teamID) {
		t.Error("a team-less editor must not manage other users' responses")
	}
}

func TestCanManage_UnknownRole(t *testing.T) {
	p := auth.Principal{ID: primitive.NewObjectID(), Role: "visitor"}
	if responsepolicy.CanManage(p, p.ID, nil) {
		t.Error("unknown roles must be denied")
	}
}

func TestListScopeFor_Admin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scope, err := responsepolicy.ListScopeFor(ctx, db, auth.Principal{
		ID: primitive.NewObjectID(), Role: models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("ListScopeFor failed: %v", err)
	}
	if !scope.CanList || !scope.All {
		t.Errorf("expected admin to list everything, got %+v", scope)
	}
}

func TestListScopeFor_User(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleUser}
	scope, err := responsepolicy.ListScopeFor(ctx, db, p)
	if err != nil {
		t.Fatalf("ListScopeFor failed: %v", err)
	}
	if !scope.CanList || scope.All {
		t.Errorf("expected scoped listing, got %+v", scope)
	}
	if len(scope.UserIDs) != 1 || scope.UserIDs[0] != p.ID {
		t.Errorf("expected scope limited to the user, got %v", scope.UserIDs)
	}
}

func TestListScopeFor_EditorIncludesTeamMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fx.CreateTeam(ctx, "Field")
	m1 := fx.CreateUser(ctx, "Member One", "m1@example.com", models.RoleUser, &team.ID)
	m2 := fx.CreateUser(ctx, "Member Two", "m2@example.com", models.RoleUser, &team.ID)
	fx.CreateUser(ctx, "Outsider", "out@example.com", models.RoleUser, nil)

	editor := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor, TeamID: &team.ID}
	scope, err := responsepolicy.ListScopeFor(ctx, db, editor)
	if err != nil {
		t.Fatalf("ListScopeFor failed: %v", err)
	}
	if !scope.CanList || scope.All {
		t.Fatalf("expected scoped listing, got %+v", scope)
	}

	want := map[primitive.ObjectID]bool{editor.ID: true, m1.ID: true, m2.ID: true}
	if len(scope.UserIDs) != len(want) {
		t.Fatalf("expected %d owner ids, got %d (%v)", len(want), len(scope.UserIDs), scope.UserIDs)
	}
	for _, id := range scope.UserIDs {
		if !want[id] {
			t.Errorf("unexpected owner id in scope: %s", id.Hex())
		}
	}
}

func TestCheckAccess_FailsClosedOnMissingOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teamID := primitive.NewObjectID()
	editor := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor, TeamID: &teamID}
	resp := models.Response{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}

	ok, err := responsepolicy.CheckAccess(ctx, db, editor, resp)
	if err != nil {
		t.Fatalf("CheckAccess failed: %v", err)
	}
	if ok {
		t.Error("expected access denied when the owner record is missing")
	}
}

func TestCheckAccess_EditorSameTeamOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team := fx.CreateTeam(ctx, "Field")
	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser, &team.ID)
	resp := fx.CreateResponse(ctx, "baseline-2026", owner.ID, nil)

	editor := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor, TeamID: &team.ID}
	ok, err := responsepolicy.CheckAccess(ctx, db, editor, resp)
	if err != nil {
		t.Fatalf("CheckAccess failed: %v", err)
	}
	if !ok {
		t.Error("expected same-team editor to have access")
	}

	otherTeam := primitive.NewObjectID()
	stranger := auth.Principal{ID: primitive.NewObjectID(), Role: models.RoleEditor, TeamID: &otherTeam}
	ok, err = responsepolicy.CheckAccess(ctx, db, stranger, resp)
	if err != nil {
		t.Fatalf("CheckAccess failed: %v", err)
	}
	if ok {
		t.Error("expected other-team editor to be denied")
	}
}
