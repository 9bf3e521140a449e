package domain

import "time"

// MessageTemplate is a stored WhatsApp message template. Sending is out of
// scope; the system only manages the template catalogue.
type MessageTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
