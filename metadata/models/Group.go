package models

import "time"

// Names of the built in groups. These exist from first startup and reject
// structural mutation.
const (
	// SiteAdminGroup has exactly one member at all times, the site administrator.
	SiteAdminGroup = "SiteAdmin"
	// AdminGroup members bypass ownership and management checks for sharing
	// operations. Its membership is controlled by the site administrator.
	AdminGroup = "Admin"
	// EveryoneGroup is the implicit group every user belongs to. It is the
	// grant target for share-with-all.
	EveryoneGroup = "AllUsers"
)

// Group is a named collection of users with a single manager. The manager is
// recorded as a GroupManager claim on the managing user.
type Group struct {
	ID int64 `db:"id"`
	// Name is unique and case sensitive
	Name string `db:"name"`
	// IsBuiltIn marks the three groups created at install time
	IsBuiltIn bool `db:"isBuiltIn"`
	// CreatedDate is when the group was created
	CreatedDate time.Time `db:"createdDate"`
	// CreatedBy is the username that created the group
	CreatedBy string `db:"createdBy"`
}

// IsBuiltInGroup reports whether name is one of the reserved built in groups.
func IsBuiltInGroup(name string) bool {
	switch name {
	case SiteAdminGroup, AdminGroup, EveryoneGroup:
		return true
	}
	return false
}
