package domain

import "time"

// Stance classifies an article relative to a book's thesis.
type Stance string

const (
	StanceSupporting Stance = "supporting"
	StanceOpposing   Stance = "opposing"
	StanceNeutral    Stance = "neutral"
)

// Valid reports whether the stance is one of the known values.
func (s Stance) Valid() bool {
	switch s {
	case StanceSupporting, StanceOpposing, StanceNeutral:
		return true
	}
	return false
}

// Article is a web article saved from a search, tied to the book it
// was searched for. The (book, URL) pair is unique; re-saving the same
// URL for a book is a no-op.
type Article struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Snippet   string    `json:"snippet,omitempty"`
	Favicon   string    `json:"favicon,omitempty"`
	Stance    Stance    `json:"stance"`
	CreatedAt time.Time `json:"created_at"`
}
