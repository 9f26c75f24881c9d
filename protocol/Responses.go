package protocol

// SuccessResponse is the body returned by mutations that succeed without
// payload.
type SuccessResponse struct {
	Response string `json:"response"`
}

// Success is the canonical success body.
var Success = SuccessResponse{Response: "success"}

// ErrorResponse carries a single error token the caller can map to a message.
type ErrorResponse struct {
	Error string `json:"error"`
}
