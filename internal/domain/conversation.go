package domain

import "time"

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a book's conversation with the reading partner.
// Turns are append-only; history is read back in chronological order.
type Turn struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
