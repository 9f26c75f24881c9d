package models

// PrincipalKind discriminates the two principal variants a claim can attach to.
type PrincipalKind string

const (
	// KindUser marks a principal that is a single user
	KindUser PrincipalKind = "U"
	// KindGroup marks a principal that is a named group
	KindGroup PrincipalKind = "G"
)

// Principal is the subject of a claim, either a user or a group.
type Principal struct {
	Kind PrincipalKind `db:"principalKind"`
	Name string        `db:"principalName"`
}

// UserPrincipal returns a Principal for a username.
func UserPrincipal(username string) Principal {
	return Principal{Kind: KindUser, Name: username}
}

// GroupPrincipal returns a Principal for a group name.
func GroupPrincipal(name string) Principal {
	return Principal{Kind: KindGroup, Name: name}
}
