package domain

import "time"

// Idea is a distilled insight card produced from a chapter's raw notes.
// Number is the card's 1-based position within its book, assigned at
// distillation time and never renumbered after deletes.
type Idea struct {
	ID          string    `json:"id"`
	BookID      string    `json:"book_id"`
	ChapterName string    `json:"chapter_name,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	Number      int       `json:"number"`
	CreatedAt   time.Time `json:"created_at"`
}
