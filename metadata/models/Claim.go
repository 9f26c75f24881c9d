package models

import (
	"strings"
	"time"
)

// Claim types. The four access level markers are ordered by implication,
// All implies Add implies Edit implies View. Implication is applied only when
// revoking (stripping every level the revoked level would imply upward), never
// when granting or resolving.
const (
	ClaimView         = "View"
	ClaimEdit         = "Edit"
	ClaimAdd          = "Add"
	ClaimAll          = "All"
	ClaimOwner        = "Owner"
	ClaimGroupManager = "GroupManager"
)

// SuperClaimValue paired with claim type All denotes the unrestricted super
// claim, authorizing every operation on every resource.
const SuperClaimValue = "All"

// Claim is a single (type, value) authorization fact attached to one principal.
type Claim struct {
	ID            int64         `db:"id"`
	PrincipalKind PrincipalKind `db:"principalKind"`
	PrincipalName string        `db:"principalName"`
	ClaimType     string        `db:"claimType"`
	ClaimValue    string        `db:"claimValue"`
	CreatedDate   time.Time     `db:"createdDate"`
	CreatedBy     string        `db:"createdBy"`
}

// Principal returns the principal the claim is attached to.
func (c Claim) Principal() Principal {
	return Principal{Kind: c.PrincipalKind, Name: c.PrincipalName}
}

// AccessLevel is one of the four ordered access markers.
type AccessLevel int

// Access levels in implication order, lowest first.
const (
	LevelView AccessLevel = iota + 1
	LevelEdit
	LevelAdd
	LevelAll
)

var levelNames = map[AccessLevel]string{
	LevelView: ClaimView,
	LevelEdit: ClaimEdit,
	LevelAdd:  ClaimAdd,
	LevelAll:  ClaimAll,
}

// String yields the claim type token for the level.
func (l AccessLevel) String() string {
	return levelNames[l]
}

// ParseAccessLevel maps an operation token to its level. The empty string
// defaults to All, the highest level, matching a grant with no operation named.
func ParseAccessLevel(s string) (AccessLevel, bool) {
	if s == "" {
		return LevelAll, true
	}
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return level, true
		}
	}
	return 0, false
}

// ImpliedUpward returns the claim types for this level and every higher level.
// Revoking a level must strip all of these on the same resource value, since a
// stored higher level would otherwise continue to authorize the lower
// operation at resolution time.
func (l AccessLevel) ImpliedUpward() []string {
	var types []string
	for level := l; level <= LevelAll; level++ {
		types = append(types, level.String())
	}
	return types
}
