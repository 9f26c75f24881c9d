package protocol

// User is the account view returned to admins.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Locked      bool   `json:"locked"`
	CreatedDate string `json:"createdDate"`
}

// UserListResponse wraps the known accounts.
type UserListResponse struct {
	Users []User `json:"users"`
}

// LockRequest sets an account's lock state.
type LockRequest struct {
	Username string `json:"username"`
	Locked   bool   `json:"locked"`
}

// CompletionResponse returns the single best match for a partial name.
type CompletionResponse struct {
	Match string `json:"match"`
}
