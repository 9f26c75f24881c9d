package dao_test

import (
	"testing"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

func TestDAOAddClaim(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	user := makeDAOTestUser(t, "daotestclaim")
	principal := models.UserPrincipal(user.Username)
	resource := "Country{0123456789abcdef0123456789abcdef}"

	if err := d.AddClaim(principal, models.ClaimView, resource, user.Username); err != nil {
		t.Fatal(err)
	}
	// a repeated grant is idempotent
	if err := d.AddClaim(principal, models.ClaimView, resource, user.Username); err != nil {
		t.Fatal(err)
	}
	has, err := d.HasClaim(principal, models.ClaimView, resource)
	if err != nil || !has {
		t.Fatalf("expected the claim to be stored, got (%v, %v)", has, err)
	}
	claims, err := d.GetClaimsForPrincipal(principal)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, claim := range claims {
		if claim.ClaimType == models.ClaimView && claim.ClaimValue == resource {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected a single row after the duplicate grant, got %d", count)
	}
}

func TestDAORemoveClaimsSet(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	user := makeDAOTestUser(t, "daotestrevoke")
	principal := models.UserPrincipal(user.Username)
	for _, claimType := range []string{models.ClaimView, models.ClaimEdit, models.ClaimAll} {
		if err := d.AddClaim(principal, claimType, "Country", user.Username); err != nil {
			t.Fatal(err)
		}
	}

	level, _ := models.ParseAccessLevel("Edit")
	if err := d.RemoveClaims(principal, level.ImpliedUpward(), "Country"); err != nil {
		t.Fatal(err)
	}
	for _, claimType := range []string{models.ClaimEdit, models.ClaimAll} {
		has, _ := d.HasClaim(principal, claimType, "Country")
		if has {
			t.Errorf("expected %s removed by the implied set delete", claimType)
		}
	}
	has, _ := d.HasClaim(principal, models.ClaimView, "Country")
	if !has {
		t.Error("expected the lower View claim to remain")
	}
	// removing an absent set is a no-op
	if err := d.RemoveClaims(principal, level.ImpliedUpward(), "Country"); err != nil {
		t.Fatal(err)
	}
}
