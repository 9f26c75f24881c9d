package protocol

// InviteRequest asks for a membership invite to be mailed to a user.
type InviteRequest struct {
	GroupName string `json:"groupName"`
	Username  string `json:"username"`
}

// AcceptInviteResponse confirms a redeemed invite.
type AcceptInviteResponse struct {
	Response  string `json:"response"`
	GroupName string `json:"groupName"`
}
