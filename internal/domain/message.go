package domain

import "time"

// ContactMessage is a public contact-form submission delivered to the
// admin principal. Messages are insertion-ordered and never removed.
type ContactMessage struct {
	ID          string    `json:"id"`
	PrincipalID string    `json:"-"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
