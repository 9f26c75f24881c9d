package auth

import "github.com/NiubilityNetCore/claim-share-server/metadata/models"

// Error is our error type.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrUserNotSpecified is an authorization error that is returned if a user identity is required but not specified.
	ErrUserNotSpecified = Error("auth: user not specified")
	// ErrUserNotFound is an authorization error that is returned if the user identity cannot be resolved.
	ErrUserNotFound = Error("auth: user not found")
	// ErrUserLocked is an authorization error that is returned if the user account is locked. Locked accounts fail closed.
	ErrUserLocked = Error("auth: user account is locked")
	// ErrFailToRetrieveClaims is returned if a store error occurs while loading a principal's claims.
	ErrFailToRetrieveClaims = Error("auth: unable to retrieve claims")
	// ErrFailToRetrieveGroups is returned if a store error occurs while loading a user's group memberships.
	ErrFailToRetrieveGroups = Error("auth: unable to retrieve groups")
)

// Authorization represents a common interface for which any auth implementation is expected to support
type Authorization interface {
	GetGroupsForUser(username string) (groups []string, err error)
	EffectiveClaims(username string) (claims []models.Claim, err error)
	IsUserAuthorized(username string, resource models.Resource, operation models.AccessLevel) (authorized bool, err error)
	IsUserOwner(username string, resource models.Resource) (isOwner bool, err error)
	IsUserAdmin(username string) (isAdmin bool, err error)
	IsUserSiteAdmin(username string) (isSiteAdmin bool, err error)
	IsGroupManager(username string, groupName string) (isManager bool, err error)
}
