package events

import "encoding/json"

// Event defines a type that can yield itself as JSON bytes.
type Event interface {
	Yield() []byte
	EventAction() string
	IsSuccessful() bool
}

// ClaimEvent records one share-manager mutation for the downstream event
// stream. Events are published only after the authorizing transaction commits.
type ClaimEvent struct {
	Action        string `json:"action"`
	Actor         string `json:"actor"`
	PrincipalKind string `json:"principal_kind,omitempty"`
	PrincipalName string `json:"principal_name,omitempty"`
	Resource      string `json:"resource,omitempty"`
	Level         string `json:"level,omitempty"`
	GroupName     string `json:"group_name,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	Timestamp     string `json:"timestamp"`
	Success       bool   `json:"success"`
}

// Yield satisfies the Event interface.
func (e ClaimEvent) Yield() []byte {
	b, _ := json.Marshal(e)
	return b
}

// EventAction satisfies the Event interface.
func (e ClaimEvent) EventAction() string {
	return e.Action
}

// IsSuccessful satisfies the Event interface.
func (e ClaimEvent) IsSuccessful() bool {
	return e.Success
}
