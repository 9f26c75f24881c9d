package mapping_test

import (
	"testing"
	"time"

	"github.com/NiubilityNetCore/claim-share-server/mapping"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

func TestMapClaimToShareEntry(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claim := models.Claim{
		PrincipalKind: models.KindGroup,
		PrincipalName: "Engineering",
		ClaimType:     models.ClaimEdit,
		ClaimValue:    "Country{0123456789abcdef0123456789abcdef}",
		CreatedBy:     "alice",
		CreatedDate:   created,
	}

	entry := mapping.MapClaimToShareEntry(claim)
	if entry.PrincipalKind != "G" || entry.PrincipalName != "Engineering" {
		t.Errorf("unexpected principal: %+v", entry)
	}
	if entry.ClaimType != "Edit" || entry.Resource != claim.ClaimValue {
		t.Errorf("unexpected claim mapping: %+v", entry)
	}
	if entry.CreatedDate != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected date: %s", entry.CreatedDate)
	}
}

func TestMapUserToProtocol(t *testing.T) {
	u := models.User{
		Username:    "alice",
		DisplayName: models.ToNullString("Alice"),
		Locked:      true,
	}
	out := mapping.MapUserToProtocol(u)
	if out.Username != "alice" || out.DisplayName != "Alice" || !out.Locked {
		t.Errorf("unexpected mapping: %+v", out)
	}
	if out.Email != "" {
		t.Errorf("null email should map to empty, got %q", out.Email)
	}
}
