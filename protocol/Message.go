package protocol

// Message is one notification addressed to the caller or a group they belong to.
type Message struct {
	Recipient   string `json:"recipient"`
	Body        string `json:"body"`
	CreatedBy   string `json:"createdBy"`
	CreatedDate string `json:"createdDate"`
}

// MessageListResponse wraps the caller's notifications.
type MessageListResponse struct {
	Messages []Message `json:"messages"`
}
