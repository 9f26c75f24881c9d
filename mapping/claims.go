// Package mapping converts between the internal models and the wire protocol
// types. Conversions are pure and never touch the store.
package mapping

import (
	"time"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

// MapClaimToShareEntry converts a stored claim to its wire form.
func MapClaimToShareEntry(c models.Claim) protocol.ShareEntry {
	return protocol.ShareEntry{
		PrincipalKind: string(c.PrincipalKind),
		PrincipalName: c.PrincipalName,
		ClaimType:     c.ClaimType,
		Resource:      c.ClaimValue,
		CreatedBy:     c.CreatedBy,
		CreatedDate:   c.CreatedDate.UTC().Format(time.RFC3339),
	}
}

// MapClaimsToShareEntries converts a slice of stored claims.
func MapClaimsToShareEntries(claims []models.Claim) []protocol.ShareEntry {
	entries := make([]protocol.ShareEntry, len(claims))
	for i, c := range claims {
		entries[i] = MapClaimToShareEntry(c)
	}
	return entries
}
