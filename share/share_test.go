package share_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/services/mail"
	"github.com/NiubilityNetCore/claim-share-server/services/registry"
	"github.com/NiubilityNetCore/claim-share-server/share"
)

const (
	itemID    = "0123456789abcdef0123456789abcdef"
	itemValue = "Country{" + itemID + "}"
)

// newTestEnv wires a Manager over the in-memory store with a real claim
// resolver. "root" is the site administrator and "adm" an Admin group member.
func newTestEnv(t *testing.T) (*share.Manager, *dao.FakeDAO, *mail.FakeSender) {
	t.Helper()
	d := dao.NewFakeDAO("root")
	for _, name := range []string{"adm", "alice", "bob", "carol"} {
		if _, err := d.CreateUser(models.User{Username: name, CreatedBy: name}); err != nil {
			t.Fatalf("seeding user %s: %v", name, err)
		}
	}
	d.AddUserToGroup("adm", models.AdminGroup, "root")

	a := auth.NewClaimAuth(zap.NewNop(), d)
	sender := &mail.FakeSender{}
	m := share.NewManager(d, a, &registry.FakeValidator{Valid: true},
		share.WithLogger(zap.NewNop()),
		share.WithMail(sender, "https://claimshare.test/invites/accept"),
	)
	return m, d, sender
}

func hasClaim(t *testing.T, d *dao.FakeDAO, p models.Principal, claimType, claimValue string) bool {
	t.Helper()
	has, err := d.HasClaim(p, claimType, claimValue)
	if err != nil {
		t.Fatalf("HasClaim: %v", err)
	}
	return has
}

func TestShareTypeLevelIsAdminOnly(t *testing.T) {
	m, d, _ := newTestEnv(t)

	if err := m.ShareWithUser("alice", "bob", "Country", "View", ""); err != share.ErrAdminOnly {
		t.Fatalf("expected ErrAdminOnly, got %v", err)
	}
	if err := m.ShareWithUser("adm", "bob", "Country", "View", ""); err != nil {
		t.Fatalf("admin type share failed: %v", err)
	}
	if !hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimView, "Country") {
		t.Error("expected View claim on Country for bob")
	}
}

func TestShareStoresExactLevelOnly(t *testing.T) {
	m, d, _ := newTestEnv(t)

	if err := m.ShareWithUser("adm", "bob", "Country", "Edit", ""); err != nil {
		t.Fatal(err)
	}
	if !hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimEdit, "Country") {
		t.Error("expected the granted Edit claim")
	}
	// the grant never expands downward to the implied levels
	if hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimView, "Country") {
		t.Error("grant must not materialize a View claim")
	}
}

func TestOwnerMayShareItem(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")

	if err := m.ShareWithUser("alice", "bob", "Country", "View", itemID); err != nil {
		t.Fatalf("owner share failed: %v", err)
	}
	if !hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimView, itemValue) {
		t.Error("expected View claim on the item for bob")
	}

	// the recipient of a plain share cannot re-share
	if err := m.ShareWithUser("bob", "carol", "Country", "View", itemID); err != share.ErrOwnerOnly {
		t.Errorf("expected ErrOwnerOnly, got %v", err)
	}
}

func TestShareInputValidation(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")

	if err := m.ShareWithUser("alice", "ghost", "Country", "View", itemID); err != share.ErrInvalidTargetPrincipal {
		t.Errorf("unknown target user: expected ErrInvalidTargetPrincipal, got %v", err)
	}
	if err := m.ShareWithGroup("alice", "NoSuchGroup", "Country", "View", itemID); err != share.ErrInvalidTargetGroup {
		t.Errorf("unknown target group: expected ErrInvalidTargetGroup, got %v", err)
	}
	if err := m.ShareWithUser("alice", "bob", "Country", "View", "nothex"); err != share.ErrData {
		t.Errorf("malformed item id: expected ErrData, got %v", err)
	}
	if err := m.ShareWithUser("alice", "bob", "Country", "Destroy", itemID); err != share.ErrData {
		t.Errorf("unknown operation: expected ErrData, got %v", err)
	}

	m.Types = &registry.FakeValidator{Valid: false}
	if err := m.ShareWithUser("alice", "bob", "Country", "View", itemID); err != share.ErrInvalidDataType {
		t.Errorf("unregistered type: expected ErrInvalidDataType, got %v", err)
	}
}

func TestShareWithAllRestrictedToViewEdit(t *testing.T) {
	m, d, _ := newTestEnv(t)

	if err := m.ShareWithAll("adm", "Country", "", ""); err != share.ErrViewEditOnly {
		t.Fatalf("full access to everyone: expected ErrViewEditOnly, got %v", err)
	}
	if err := m.ShareWithAll("adm", "Country", "Add", ""); err != share.ErrViewEditOnly {
		t.Fatalf("Add to everyone: expected ErrViewEditOnly, got %v", err)
	}
	if err := m.ShareWithAll("adm", "Country", "View", ""); err != nil {
		t.Fatalf("View to everyone failed: %v", err)
	}
	if !hasClaim(t, d, models.GroupPrincipal(models.EveryoneGroup), models.ClaimView, "Country") {
		t.Error("expected the AllUsers View claim")
	}

	// naming the AllUsers group directly follows the same restriction
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	if err := m.ShareWithGroup("alice", models.EveryoneGroup, "Country", "Add", itemID); err != share.ErrViewEditOnly {
		t.Fatalf("expected ErrViewEditOnly, got %v", err)
	}
	if err := m.ShareWithGroup("alice", models.EveryoneGroup, "Country", "Edit", itemID); err != nil {
		t.Fatalf("item Edit to everyone failed: %v", err)
	}
}

func TestManagerReShare(t *testing.T) {
	m, d, _ := newTestEnv(t)

	if err := m.StartNewGroup("carol", "Engineering"); err != nil {
		t.Fatal(err)
	}
	// the group effectively holds Edit on the item, so its manager does too
	d.AddClaim(models.GroupPrincipal("Engineering"), models.ClaimEdit, itemValue, "root")

	if err := m.ShareWithGroup("carol", "Engineering", "Country", "View", itemID); err != nil {
		t.Fatalf("manager re-share of View failed: %v", err)
	}
	if err := m.ShareWithGroup("carol", "Engineering", "Country", "Add", itemID); err != share.ErrManagerOnlyShared {
		t.Fatalf("manager re-share of Add: expected ErrManagerOnlyShared, got %v", err)
	}

	// a manager without effective Edit on the item cannot re-share it
	otherID := "ffffffffffffffffffffffffffffffff"
	if err := m.ShareWithGroup("carol", "Engineering", "Country", "View", otherID); err != share.ErrManagerOrOwnerOnly {
		t.Fatalf("expected ErrManagerOrOwnerOnly, got %v", err)
	}

	// a non-manager non-owner cannot alter sharing for the group
	if err := m.ShareWithGroup("bob", "Engineering", "Country", "View", itemID); err != share.ErrManagerOrOwnerOnly {
		t.Fatalf("expected ErrManagerOrOwnerOnly, got %v", err)
	}
}

func TestHideStripsImpliedUpward(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	for _, claimType := range []string{models.ClaimView, models.ClaimAdd, models.ClaimAll} {
		d.AddClaim(models.UserPrincipal("bob"), claimType, itemValue, "root")
	}

	if err := m.HideFromUser("alice", "bob", "Country", "View", itemID); err != nil {
		t.Fatal(err)
	}
	for _, claimType := range []string{models.ClaimView, models.ClaimEdit, models.ClaimAdd, models.ClaimAll} {
		if hasClaim(t, d, models.UserPrincipal("bob"), claimType, itemValue) {
			t.Errorf("revoking View must also strip %s", claimType)
		}
	}
}

func TestHideKeepsLowerLevels(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimEdit, itemValue, "root")
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimAll, itemValue, "root")

	// revoking Add strips Add and All but a stored Edit survives
	if err := m.HideFromUser("alice", "bob", "Country", "Add", itemID); err != nil {
		t.Fatal(err)
	}
	if hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimAll, itemValue) {
		t.Error("revoking Add must strip All")
	}
	if !hasClaim(t, d, models.UserPrincipal("bob"), models.ClaimEdit, itemValue) {
		t.Error("revoking Add must not strip Edit")
	}
}

func TestLockedCallerRejected(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	d.SetUserLocked("alice", true, "root")

	if err := m.ShareWithUser("alice", "bob", "Country", "View", itemID); err != share.ErrInvalidUser {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestListSharesGate(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimView, itemValue, "root")

	claims, err := m.ListShares("alice", "Country", itemID)
	if err != nil {
		t.Fatalf("owner listing failed: %v", err)
	}
	if len(claims) != 2 {
		t.Errorf("expected 2 claims on the item, got %d", len(claims))
	}

	if _, err := m.ListShares("bob", "Country", itemID); err != share.ErrOwnerOnly {
		t.Errorf("expected ErrOwnerOnly, got %v", err)
	}
	if _, err := m.ListShares("alice", "Country", ""); err != share.ErrAdminOnly {
		t.Errorf("type-wide listing: expected ErrAdminOnly, got %v", err)
	}
	if _, err := m.ListShares("adm", "Country", ""); err != nil {
		t.Errorf("admin type-wide listing failed: %v", err)
	}
}
