package dto

// SendMessageRequest payload for the public contact form.
type SendMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
