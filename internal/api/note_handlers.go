package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/service"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/notes",
		Summary:     "List notes",
		Description: "Returns a book's chapter notes in chapter order",
		Tags:        []string{"Notes"},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "saveNote",
		Method:        http.MethodPost,
		Path:          "/api/notes",
		Summary:       "Save note",
		Description:   "Creates a chapter note, or replaces the existing note for the same chapter",
		Tags:          []string{"Notes"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSaveNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPatch,
		Path:        "/api/notes/{id}",
		Summary:     "Update note content",
		Tags:        []string{"Notes"},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteNote",
		Method:      http.MethodDelete,
		Path:        "/api/notes/{id}",
		Summary:     "Delete note",
		Tags:        []string{"Notes"},
	}, s.handleDeleteNote)
}

// === DTOs ===

// NoteResponse contains note data in API responses.
type NoteResponse struct {
	ID           string    `json:"id" doc:"Note ID"`
	BookID       string    `json:"book_id" doc:"Owning book ID"`
	ChapterName  string    `json:"chapter_name" doc:"Chapter name"`
	ChapterOrder int       `json:"chapter_order" doc:"Chapter position"`
	Content      string    `json:"content" doc:"Raw note content"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// ListNotesInput contains parameters for listing notes.
type ListNotesInput struct {
	BookID string `query:"book_id" required:"true" doc:"Book ID"`
}

// ListNotesOutput wraps the note list for Huma.
type ListNotesOutput struct {
	Body []NoteResponse
}

// SaveNoteInput wraps the save note request for Huma.
type SaveNoteInput struct {
	Body service.SaveNoteRequest
}

// NoteOutput wraps a single note response for Huma.
type NoteOutput struct {
	Body NoteResponse
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" doc:"Replacement note content"`
}

// UpdateNoteInput wraps the update note request for Huma.
type UpdateNoteInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body UpdateNoteRequest
}

// DeleteNoteInput contains parameters for deleting a note.
type DeleteNoteInput struct {
	ID string `path:"id" doc:"Note ID"`
}

func noteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:           n.ID,
		BookID:       n.BookID,
		ChapterName:  n.ChapterName,
		ChapterOrder: n.ChapterOrder,
		Content:      n.Content,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error) {
	notes, err := s.services.Notes.ListNotes(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	resp := make([]NoteResponse, len(notes))
	for i, n := range notes {
		resp[i] = noteResponse(n)
	}

	return &ListNotesOutput{Body: resp}, nil
}

func (s *Server) handleSaveNote(ctx context.Context, input *SaveNoteInput) (*NoteOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	n, err := s.services.Notes.SaveNote(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &NoteOutput{Body: noteResponse(n)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*NoteOutput, error) {
	n, err := s.services.Notes.UpdateNoteContent(ctx, input.ID, input.Body.Content)
	if err != nil {
		return nil, err
	}

	return &NoteOutput{Body: noteResponse(n)}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *DeleteNoteInput) (*SuccessOutput, error) {
	if err := s.services.Notes.DeleteNote(ctx, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
