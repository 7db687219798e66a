package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated         EventType = "product_created"
	EventProductUpdated         EventType = "product_updated"
	EventProductDeleted         EventType = "product_deleted"
	EventContactMessageReceived EventType = "contact_message_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProductEventPayload accompanies product lifecycle events.
type ProductEventPayload struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title,omitempty"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price,omitempty"`
}

// ContactMessagePayload accompanies contact-form submissions.
type ContactMessagePayload struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Preview   string `json:"preview"`
}
