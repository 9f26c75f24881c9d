package protocol

// GroupRequest names a group for create, remove and leave operations.
type GroupRequest struct {
	GroupName string `json:"groupName"`
}

// MemberRequest names a user and a group for membership operations.
type MemberRequest struct {
	GroupName string `json:"groupName"`
	Username  string `json:"username"`
}

// TransferManagerRequest moves group management to another member.
type TransferManagerRequest struct {
	GroupName  string `json:"groupName"`
	NewManager string `json:"newManager"`
}

// TransferSiteAdminRequest moves the singular site administrator role.
type TransferSiteAdminRequest struct {
	NewAdmin string `json:"newAdmin"`
}

// GroupMembersResponse lists the members of a group.
type GroupMembersResponse struct {
	GroupName string   `json:"groupName"`
	Members   []string `json:"members"`
}
