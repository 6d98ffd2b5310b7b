package api

// MessageResponse is a confirmation body for operations with nothing else to return.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable confirmation"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func message(text string) *MessageOutput {
	return &MessageOutput{Body: MessageResponse{Message: text}}
}
