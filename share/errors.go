package share

// Error is our error type. Gate failures compare by value so callers can map
// each kind to a wire response.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidUser is returned when the caller cannot be resolved or the account is locked.
	ErrInvalidUser = Error("share: user not resolvable or locked")
	// ErrInvalidDataType is returned when the data type is not a registered resource type.
	ErrInvalidDataType = Error("share: data type is not a registered resource type")
	// ErrInvalidTargetPrincipal is returned when the target user does not exist.
	ErrInvalidTargetPrincipal = Error("share: target principal does not exist")
	// ErrInvalidTargetGroup is returned when the target group does not exist.
	ErrInvalidTargetGroup = Error("share: target group does not exist")
	// ErrAdminOnly is returned when a type level share or revoke is attempted without admin authority.
	ErrAdminOnly = Error("share: sharing an entire type requires admin")
	// ErrSiteAdminOnly is returned for operations reserved to the site administrator.
	ErrSiteAdminOnly = Error("share: operation requires the site administrator")
	// ErrOwnerOnly is returned when an item share to a user requires ownership the caller lacks.
	ErrOwnerOnly = Error("share: only the owner may alter sharing for this item")
	// ErrManagerOnly is returned when a group operation requires management authority the caller lacks.
	ErrManagerOnly = Error("share: only the group manager may perform this operation")
	// ErrManagerOrOwnerOnly is returned when an item share to a group requires ownership or group management the caller lacks.
	ErrManagerOrOwnerOnly = Error("share: only the owner or the target group's manager may alter sharing for this item")
	// ErrManagerOnlyShared is returned when a group manager attempts to re-share a level beyond View or Edit.
	ErrManagerOnlyShared = Error("share: managers may re-share only view or edit")
	// ErrViewEditOnly is returned when a share with all users names a level beyond View or Edit.
	ErrViewEditOnly = Error("share: only view or edit may be shared with all users")
	// ErrData is returned for a malformed resource descriptor or item id.
	ErrData = Error("share: malformed resource descriptor")
	// ErrDuplicateGroupName is returned when the group name is already taken.
	ErrDuplicateGroupName = Error("share: group name already exists")
	// ErrReservedGroupName is returned when the group name is empty, a boolean token, or reserved for administrative groups.
	ErrReservedGroupName = Error("share: group name is reserved")
	// ErrNotMember is returned when management is transferred to a user outside the group.
	ErrNotMember = Error("share: proposed manager is not a member of the group")
	// ErrMustHaveManager is returned when an operation would leave a group without a manager.
	ErrMustHaveManager = Error("share: group must have a manager; transfer management first")
	// ErrSiteAdminSingular is returned for structural mutation attempts on the SiteAdmin group.
	ErrSiteAdminSingular = Error("share: the SiteAdmin group always has exactly one member")
	// ErrAdminRequired is returned for structural mutation attempts on the Admin group.
	ErrAdminRequired = Error("share: the Admin group is managed only by the site administrator")
	// ErrAllUsersRequired is returned for structural mutation attempts on the AllUsers group.
	ErrAllUsersRequired = Error("share: the AllUsers group membership is implicit and cannot change")
	// ErrInvalidInvite is returned when an invite token is unknown, expired or already used.
	ErrInvalidInvite = Error("share: invite is not valid")
	// ErrStore is returned when the backing store fails unexpectedly. Never retried here.
	ErrStore = Error("share: store failure")
)
