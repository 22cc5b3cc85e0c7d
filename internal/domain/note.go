package domain

import "time"

// Note holds the raw notes for one chapter of a book.
// A book has at most one note per chapter name; saving the same
// chapter again replaces its content.
type Note struct {
	ID           string    `json:"id"`
	BookID       string    `json:"book_id"`
	ChapterName  string    `json:"chapter_name"`
	ChapterOrder int       `json:"chapter_order"` // Position in the book's chapter list
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}
