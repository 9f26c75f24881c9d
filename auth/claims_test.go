package auth_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

const itemID = "0123456789abcdef0123456789abcdef"

func setup(t *testing.T) (*auth.ClaimAuth, *dao.FakeDAO) {
	t.Helper()
	d := dao.NewFakeDAO("root")
	a := auth.NewClaimAuth(zap.NewNop(), d)
	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := d.CreateUser(models.User{Username: name, CreatedBy: name}); err != nil {
			t.Fatalf("seeding user %s: %v", name, err)
		}
	}
	return a, d
}

func mustResource(t *testing.T, dataType, id string) models.Resource {
	t.Helper()
	r, err := models.NewResource(dataType, id)
	if err != nil {
		t.Fatalf("resource %s %s: %v", dataType, id, err)
	}
	return r
}

func TestIsUserAuthorizedPrecedence(t *testing.T) {
	a, d := setup(t)
	item := mustResource(t, "Country", itemID)
	typeOnly := mustResource(t, "Country", "")

	// no claims at all
	ok, err := a.IsUserAuthorized("alice", item, models.LevelView)
	if err != nil || ok {
		t.Fatalf("expected unauthorized, got (%v, %v)", ok, err)
	}

	// super claim authorizes everything
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimAll, models.SuperClaimValue, "root")
	for _, level := range []models.AccessLevel{models.LevelView, models.LevelEdit, models.LevelAdd, models.LevelAll} {
		ok, err := a.IsUserAuthorized("alice", item, level)
		if err != nil || !ok {
			t.Fatalf("super claim: expected authorized for %v, got (%v, %v)", level, ok, err)
		}
	}

	// type-wide All authorizes every operation on the type and its items
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimAll, "Country", "root")
	ok, _ = a.IsUserAuthorized("bob", typeOnly, models.LevelAdd)
	if !ok {
		t.Error("type-wide All should authorize Add on the type")
	}
	ok, _ = a.IsUserAuthorized("bob", item, models.LevelEdit)
	if !ok {
		t.Error("type-wide All should authorize Edit on an item")
	}

	// operation scoped to the type
	d.AddClaim(models.UserPrincipal("carol"), models.ClaimView, "Country", "root")
	ok, _ = a.IsUserAuthorized("carol", typeOnly, models.LevelView)
	if !ok {
		t.Error("type View claim should authorize View on the type")
	}
	ok, _ = a.IsUserAuthorized("carol", typeOnly, models.LevelEdit)
	if ok {
		t.Error("type View claim must not authorize Edit")
	}
}

func TestIsUserAuthorizedNoDownwardImplication(t *testing.T) {
	a, d := setup(t)
	item := mustResource(t, "Country", itemID)

	// a stored Edit claim does not resolve a View request; implication is
	// applied when revoking, not when resolving
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimEdit, item.String(), "root")
	ok, err := a.IsUserAuthorized("alice", item, models.LevelView)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("item Edit claim must not authorize View")
	}
	ok, _ = a.IsUserAuthorized("alice", item, models.LevelEdit)
	if !ok {
		t.Error("item Edit claim should authorize Edit")
	}
}

func TestIsUserAuthorizedItemScopes(t *testing.T) {
	a, d := setup(t)
	item := mustResource(t, "Country", itemID)

	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, item.String(), "root")
	ok, _ := a.IsUserAuthorized("alice", item, models.LevelAll)
	if !ok {
		t.Error("Owner marker should authorize any operation on the item")
	}

	isOwner, err := a.IsUserOwner("alice", item)
	if err != nil || !isOwner {
		t.Errorf("expected owner, got (%v, %v)", isOwner, err)
	}
	isOwner, _ = a.IsUserOwner("bob", item)
	if isOwner {
		t.Error("bob is not the owner")
	}
}

func TestIsUserAuthorizedThroughGroups(t *testing.T) {
	a, d := setup(t)
	item := mustResource(t, "Country", itemID)

	d.CreateGroup(models.Group{Name: "Engineering", CreatedBy: "alice"}, "alice")
	d.AddUserToGroup("bob", "Engineering", "alice")
	d.AddClaim(models.GroupPrincipal("Engineering"), models.ClaimView, item.String(), "root")

	ok, _ := a.IsUserAuthorized("bob", item, models.LevelView)
	if !ok {
		t.Error("group claim should extend to members")
	}
	ok, _ = a.IsUserAuthorized("carol", item, models.LevelView)
	if ok {
		t.Error("group claim must not extend to non-members")
	}

	// everyone holds the AllUsers claims
	d.AddClaim(models.GroupPrincipal(models.EveryoneGroup), models.ClaimEdit, item.String(), "root")
	ok, _ = a.IsUserAuthorized("carol", item, models.LevelEdit)
	if !ok {
		t.Error("AllUsers claim should extend to every user")
	}
}

func TestLockedUserFailsClosed(t *testing.T) {
	a, d := setup(t)
	item := mustResource(t, "Country", itemID)

	d.AddClaim(models.UserPrincipal("alice"), models.ClaimAll, models.SuperClaimValue, "root")
	d.SetUserLocked("alice", true, "root")

	ok, err := a.IsUserAuthorized("alice", item, models.LevelView)
	if err != auth.ErrUserLocked {
		t.Fatalf("expected ErrUserLocked, got %v", err)
	}
	if ok {
		t.Error("locked user must never be authorized")
	}
}

func TestIsUserAdmin(t *testing.T) {
	a, d := setup(t)

	isAdmin, err := a.IsUserAdmin("root")
	if err != nil || !isAdmin {
		t.Errorf("site admin counts as admin, got (%v, %v)", isAdmin, err)
	}
	isAdmin, _ = a.IsUserAdmin("alice")
	if isAdmin {
		t.Error("alice is not an admin")
	}

	d.AddUserToGroup("alice", models.AdminGroup, "root")
	isAdmin, _ = a.IsUserAdmin("alice")
	if !isAdmin {
		t.Error("Admin group member counts as admin")
	}
	isSiteAdmin, _ := a.IsUserSiteAdmin("alice")
	if isSiteAdmin {
		t.Error("Admin membership does not confer site admin")
	}
}

func TestIsGroupManager(t *testing.T) {
	a, d := setup(t)

	d.CreateGroup(models.Group{Name: "Engineering", CreatedBy: "alice"}, "alice")
	isManager, err := a.IsGroupManager("alice", "Engineering")
	if err != nil || !isManager {
		t.Errorf("creator manages the group, got (%v, %v)", isManager, err)
	}
	isManager, _ = a.IsGroupManager("bob", "Engineering")
	if isManager {
		t.Error("bob does not manage Engineering")
	}
}
