package protocol

// ShareEntry describes one claim attached to a resource.
type ShareEntry struct {
	PrincipalKind string `json:"principalKind"`
	PrincipalName string `json:"principalName"`
	ClaimType     string `json:"claimType"`
	Resource      string `json:"resource"`
	CreatedBy     string `json:"createdBy"`
	CreatedDate   string `json:"createdDate"`
}

// ShareListResponse wraps the entries for one resource.
type ShareListResponse struct {
	Resource string       `json:"resource"`
	Shares   []ShareEntry `json:"shares"`
}
