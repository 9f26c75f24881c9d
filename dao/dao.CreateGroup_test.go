package dao_test

import (
	"database/sql"
	"testing"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

func TestDAOGroupLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	manager := makeDAOTestUser(t, "daotestmgr")
	member := makeDAOTestUser(t, "daotestmbr")
	groupName := testName("DaoTestGroup")

	if _, err := d.CreateGroup(models.Group{Name: groupName, CreatedBy: manager.Username}, manager.Username); err != nil {
		t.Fatal(err)
	}
	// the creator is enrolled and holds management
	inGroup, err := d.IsUserInGroup(manager.Username, groupName)
	if err != nil || !inGroup {
		t.Fatalf("expected the creator enrolled, got (%v, %v)", inGroup, err)
	}
	got, err := d.GetGroupManager(groupName)
	if err != nil || got != manager.Username {
		t.Fatalf("expected the creator as manager, got (%q, %v)", got, err)
	}

	// a second create under the same name is a unique key violation
	if _, err := d.CreateGroup(models.Group{Name: groupName, CreatedBy: member.Username}, member.Username); err == nil {
		t.Error("expected a duplicate name error")
	}

	if err := d.AddUserToGroup(member.Username, groupName, manager.Username); err != nil {
		t.Fatal(err)
	}
	members, err := d.GetMembersOfGroup(groupName)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %v", members)
	}

	if err := d.TransferGroupManager(groupName, member.Username, manager.Username, false); err != nil {
		t.Fatal(err)
	}
	got, err = d.GetGroupManager(groupName)
	if err != nil || got != member.Username {
		t.Fatalf("expected management transferred, got (%q, %v)", got, err)
	}

	if err := d.DeleteGroup(groupName); err != nil {
		t.Fatal(err)
	}
	if _, err := d.GetGroupByName(groupName); err != sql.ErrNoRows {
		t.Errorf("expected the group row gone, got %v", err)
	}
	// the manager claim goes with the group
	has, _ := d.HasClaim(models.UserPrincipal(member.Username), models.ClaimGroupManager, groupName)
	if has {
		t.Error("expected the manager claim removed with the group")
	}
}
