package protocol

// ShareRequest names what to share or hide and with whom. Exactly one of
// TargetUser, TargetGroup or ShareWithAll identifies the target principal.
// Operation may be empty, which means full access.
type ShareRequest struct {
	DataType     string `json:"dataType"`
	Operation    string `json:"operation,omitempty"`
	ItemID       string `json:"itemId,omitempty"`
	TargetUser   string `json:"targetUser,omitempty"`
	TargetGroup  string `json:"targetGroup,omitempty"`
	ShareWithAll bool   `json:"shareWithAll,omitempty"`
}
