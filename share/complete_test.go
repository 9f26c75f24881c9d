package share_test

import (
	"testing"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/share"
)

func TestCompleteUsernameScoping(t *testing.T) {
	m, _, _ := newTestEnv(t)

	// admins complete against every account
	match, err := m.CompleteUsername("adm", "al")
	if err != nil || match != "alice" {
		t.Errorf("admin completion: expected alice, got (%q, %v)", match, err)
	}

	// others only against users they share a group with
	match, err = m.CompleteUsername("bob", "al")
	if err != nil || match != "" {
		t.Errorf("unrelated completion: expected no match, got (%q, %v)", match, err)
	}

	if err := m.StartNewGroup("bob", "Engineering"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddUserToGroup("bob", "alice", "Engineering"); err != nil {
		t.Fatal(err)
	}
	match, err = m.CompleteUsername("bob", "al")
	if err != nil || match != "alice" {
		t.Errorf("groupmate completion: expected alice, got (%q, %v)", match, err)
	}

	// empty partial never matches
	match, _ = m.CompleteUsername("adm", "")
	if match != "" {
		t.Errorf("empty partial: expected no match, got %q", match)
	}
}

func TestCompleteGroupNameScoping(t *testing.T) {
	m, _, _ := newTestEnv(t)

	if err := m.StartNewGroup("carol", "Engineering"); err != nil {
		t.Fatal(err)
	}

	match, err := m.CompleteGroupName("adm", "Eng")
	if err != nil || match != "Engineering" {
		t.Errorf("admin completion: expected Engineering, got (%q, %v)", match, err)
	}
	match, err = m.CompleteGroupName("alice", "Eng")
	if err != nil || match != "" {
		t.Errorf("outsider completion: expected no match, got (%q, %v)", match, err)
	}
	match, err = m.CompleteGroupName("carol", "Eng")
	if err != nil || match != "Engineering" {
		t.Errorf("member completion: expected Engineering, got (%q, %v)", match, err)
	}

	// membership in AllUsers never completes for non-admins
	match, _ = m.CompleteGroupName("alice", "All")
	if match != "" {
		t.Errorf("built in completion: expected no match, got %q", match)
	}
}

func TestShareCreatesNotification(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")

	if err := m.ShareWithUser("alice", "bob", "Country", "View", itemID); err != nil {
		t.Fatal(err)
	}
	messages, err := m.ListMessages("bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message for bob, got %d", len(messages))
	}
	if messages[0].CreatedBy != "alice" {
		t.Errorf("expected message from alice, got %q", messages[0].CreatedBy)
	}

	// group shares notify through the group
	if err := m.StartNewGroup("carol", "Engineering"); err != nil {
		t.Fatal(err)
	}
	if err := m.ShareWithGroup("alice", "Engineering", "Country", "View", itemID); err != nil {
		t.Fatal(err)
	}
	messages, _ = m.ListMessages("carol")
	if len(messages) != 1 {
		t.Fatalf("expected 1 message for carol via the group, got %d", len(messages))
	}
}

func TestSetUserLocked(t *testing.T) {
	m, d, _ := newTestEnv(t)
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimOwner, itemValue, "root")

	if err := m.SetUserLocked("alice", "bob", true); err != share.ErrAdminOnly {
		t.Fatalf("expected ErrAdminOnly, got %v", err)
	}
	if err := m.SetUserLocked("adm", "bob", true); err != nil {
		t.Fatalf("admin lock failed: %v", err)
	}
	// a locked user cannot act, even on resources they own
	if err := m.ShareWithUser("bob", "carol", "Country", "View", itemID); err != share.ErrInvalidUser {
		t.Fatalf("locked caller: expected ErrInvalidUser, got %v", err)
	}
	if err := m.SetUserLocked("adm", "bob", false); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if err := m.ShareWithUser("bob", "carol", "Country", "View", itemID); err != nil {
		t.Fatalf("unlocked caller share failed: %v", err)
	}

	// the site administrator cannot be locked out
	if err := m.SetUserLocked("adm", "root", true); err != share.ErrSiteAdminOnly {
		t.Fatalf("expected ErrSiteAdminOnly, got %v", err)
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	m, _, _ := newTestEnv(t)

	if _, err := m.ListUsers("alice"); err != share.ErrAdminOnly {
		t.Fatalf("expected ErrAdminOnly, got %v", err)
	}
	users, err := m.ListUsers("adm")
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 5 {
		t.Errorf("expected 5 seeded users, got %d", len(users))
	}
}
