package service

// Services groups every service for handler wiring.
type Services struct {
	Books     *BookService
	Notes     *NoteService
	Distill   *DistillService
	Chat      *ChatService
	Social    *SocialService
	Narrative *NarrativeService
	Digest    *DigestService
	Research  *ResearchService
	Profile   *ProfileService
}
