package domain

import "time"

// Book represents a book the reader is taking notes on.
// Progress is a 0-100 reading percentage maintained by the client.
type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Category   string    `json:"category,omitempty"`
	WhyReading string    `json:"why_reading,omitempty"` // The reader's stated motivation
	SpineColor string    `json:"spine_color,omitempty"` // Hex color for the shelf UI
	Progress   int       `json:"progress"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now()
}

// BookUpdate holds a partial update. Nil fields are left unchanged.
type BookUpdate struct {
	Title      *string `json:"title,omitempty"`
	Author     *string `json:"author,omitempty"`
	Category   *string `json:"category,omitempty"`
	WhyReading *string `json:"why_reading,omitempty"`
	SpineColor *string `json:"spine_color,omitempty"`
	Progress   *int    `json:"progress,omitempty"`
}
