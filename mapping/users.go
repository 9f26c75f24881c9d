package mapping

import (
	"time"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
)

// MapUserToProtocol converts a stored account to its wire form. Null columns
// map to absent fields.
func MapUserToProtocol(u models.User) protocol.User {
	out := protocol.User{
		Username:    u.Username,
		Locked:      u.Locked,
		CreatedDate: u.CreatedDate.UTC().Format(time.RFC3339),
	}
	if u.DisplayName.Valid {
		out.DisplayName = u.DisplayName.String
	}
	if u.Email.Valid {
		out.Email = u.Email.String
	}
	return out
}

// MapUsersToProtocol converts a slice of stored accounts.
func MapUsersToProtocol(users []models.User) []protocol.User {
	out := make([]protocol.User, len(users))
	for i, u := range users {
		out[i] = MapUserToProtocol(u)
	}
	return out
}
