// Package synthesis turns assembled book context into generated
// content: idea cards, chat replies, social posts, cross-book
// narratives, and the weekly digest.
package synthesis

import (
	"context"
	"fmt"
	"strings"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/llm"
)

// Prompt budget limits. Oversized inputs are cut, not rejected; the
// interesting part of notes is assumed to be at the front, and of a
// draft at the end.
const (
	chatNotesLimit     = 1500
	chatHistoryTurns   = 8
	libraryIdeasCap    = 5
	libraryIdeaBodyCap = 120
	suggestDraftTail   = 600
	tweetsNotesLimit   = 2000
	tweetsIdeaBodyCap  = 100
	threadNotesLimit   = 2500
	threadIdeaBodyCap  = 130
)

// IdeaRef is an idea card reference folded into prompts.
type IdeaRef struct {
	Title string
	Body  string
	Tags  []string
}

// Card is one distilled insight as returned by the model.
type Card struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
	Number int      `json:"number"`
}

// DistillInput is the assembled context for a distillation call.
type DistillInput struct {
	BookTitle     string
	Author        string
	ChapterName   string
	RawNotes      string
	ExistingIdeas []IdeaRef
}

// LibraryBook is another book's context for cross-library chat.
type LibraryBook struct {
	Title  string
	Author string
	Ideas  []IdeaRef
}

// ChatInput is the assembled context for a reading-partner reply.
type ChatInput struct {
	BookTitle   string
	Author      string
	Notes       string
	IdeaCards   []IdeaRef
	History     []llm.Message
	UserMessage string
	Library     []LibraryBook
}

// SuggestInput is the assembled context for a writing suggestion.
type SuggestInput struct {
	BookTitle   string
	Author      string
	CurrentText string
	IdeaCards   []IdeaRef
}

// SocialInput is the assembled context for tweet, thread, and
// LinkedIn generation.
type SocialInput struct {
	BookTitle    string
	Author       string
	ChapterName  string
	NotesContent string
	Ideas        []IdeaRef
	Voice        *domain.VoiceProfile
}

// ThreadTweet is one tweet in a numbered thread.
type ThreadTweet struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// LinkedInPosts holds the three generated post variants.
type LinkedInPosts struct {
	Insight  string `json:"insight"`
	Listicle string `json:"listicle"`
	Story    string `json:"story"`
}

// RepurposeInput is a thread to rewrite as a single LinkedIn post.
type RepurposeInput struct {
	Thread    []ThreadTweet
	BookTitle string
	Author    string
	Voice     *domain.VoiceProfile
}

// NarrativeBook is one book's idea cards for the macro narrative.
type NarrativeBook struct {
	Title  string
	Author string
	Ideas  []IdeaRef
}

// ThemeIdea attributes an idea card inside a theme.
type ThemeIdea struct {
	BookTitle string `json:"bookTitle"`
	IdeaTitle string `json:"ideaTitle"`
	IdeaBody  string `json:"ideaBody"`
}

// Theme is a thematic cluster cutting across books.
type Theme struct {
	Name  string      `json:"name"`
	Ideas []ThemeIdea `json:"ideas"`
}

// NarrativeResult is the macro narrative with its themes.
type NarrativeResult struct {
	Themes    []Theme `json:"themes"`
	Narrative string  `json:"narrative"`
}

// DigestArticle is the article pick offered to the digest.
type DigestArticle struct {
	Title  string
	URL    string
	Domain string
}

// DigestInput is the aggregated week of ideas for the digest.
type DigestInput struct {
	Books      []NarrativeBook
	TopArticle *DigestArticle
	Voice      *domain.VoiceProfile
}

// DigestKeyIdea is one digest entry attributed to its book.
type DigestKeyIdea struct {
	Book    string `json:"book"`
	Title   string `json:"title"`
	Insight string `json:"insight"`
}

// DigestResult is the generated newsletter before plain-text assembly.
type DigestResult struct {
	SubjectLine    string          `json:"subject_line"`
	OpeningHook    string          `json:"opening_hook"`
	KeyIdeas       []DigestKeyIdea `json:"key_ideas"`
	ArticlePick    string          `json:"article_pick"`
	ClosingThought string          `json:"closing_thought"`
}

// StanceArticle is an article to classify against a thesis.
type StanceArticle struct {
	Title   string
	Snippet string
}

// Engine dispatches generation operations to the completion client
// with per-operation decoding parameters.
type Engine struct {
	client llm.Client
}

// NewEngine creates a synthesis engine.
func NewEngine(client llm.Client) *Engine {
	return &Engine{client: client}
}

// Distill turns raw chapter notes into 3-5 insight cards.
func (e *Engine) Distill(ctx context.Context, in DistillInput) ([]Card, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Book: %q by %s\nChapter: %s\n\nRaw notes:\n\"\"\"\n%s\n\"\"\"\n\n",
		in.BookTitle, in.Author, in.ChapterName, in.RawNotes)
	if len(in.ExistingIdeas) > 0 {
		titles := make([]string, len(in.ExistingIdeas))
		for i, idea := range in.ExistingIdeas {
			titles[i] = idea.Title
		}
		fmt.Fprintf(&b, "Existing insights to avoid duplicating: %s\n\n", strings.Join(titles, ", "))
	}
	b.WriteString("Return 3-5 insight cards as JSON array. Each card: { title: string, body: string, tags: string[], number: number }")

	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: distillSystemPrompt},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.7,
		MaxTokens:   1500,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	return decodeList[Card](raw, "insights", "ideas", "cards")
}

// ChatReply generates the reading partner's next message.
func (e *Engine) ChatReply(ctx context.Context, in ChatInput) (string, error) {
	var b strings.Builder
	b.WriteString(chatSystemPromptHeader)
	fmt.Fprintf(&b, "\n\nCurrent book: %q by %s\n\n", in.BookTitle, in.Author)

	b.WriteString("Their notes summary:\n")
	if in.Notes != "" {
		b.WriteString(truncate(in.Notes, chatNotesLimit))
	} else {
		b.WriteString("No notes yet")
	}

	b.WriteString("\n\nTheir distilled ideas:\n")
	if len(in.IdeaCards) > 0 {
		for _, c := range in.IdeaCards {
			fmt.Fprintf(&b, "- %s: %s\n", c.Title, c.Body)
		}
	} else {
		b.WriteString("None yet")
	}

	b.WriteString("\n\n")
	b.WriteString(chatSystemPromptGuidelines)

	if len(in.Library) > 0 {
		b.WriteString("\n\n### Your Library\nYou also have context from the reader's other books. Draw explicit cross-book connections when relevant — name the book and author:\n")
		for _, book := range in.Library {
			fmt.Fprintf(&b, "\n**%s** by %s:\n", book.Title, book.Author)
			ideas := book.Ideas
			if len(ideas) > libraryIdeasCap {
				ideas = ideas[:libraryIdeasCap]
			}
			for _, idea := range ideas {
				fmt.Fprintf(&b, "  - %s: %s\n", idea.Title, truncate(idea.Body, libraryIdeaBodyCap))
			}
		}
	}

	messages := make([]llm.Message, 0, len(in.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.String()})

	history := in.History
	if len(history) > chatHistoryTurns {
		history = history[len(history)-chatHistoryTurns:]
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: in.UserMessage})

	return e.client.Complete(ctx, llm.Request{
		Messages:    messages,
		Temperature: 0.82,
		MaxTokens:   400,
	})
}

// SuggestWriting proposes a continuation of the reader's draft.
func (e *Engine) SuggestWriting(ctx context.Context, in SuggestInput) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Current draft:\n%s\n\nKey ideas:\n", tail(in.CurrentText, suggestDraftTail))
	for _, c := range in.IdeaCards {
		fmt.Fprintf(&b, "• %s\n", c.Title)
	}
	b.WriteString("\nSuggest a continuation (1-2 sentences or a paragraph):")

	out, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fmt.Sprintf(suggestSystemPromptFormat, in.BookTitle, in.Author)},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.75,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Tweets generates 3-5 standalone tweets from chapter notes.
func (e *Engine) Tweets(ctx context.Context, in SocialInput) ([]string, error) {
	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: tweetsSystemPrompt + voiceBlock(in.Voice)},
			{Role: llm.RoleUser, Content: socialUserPrompt(in, tweetsNotesLimit, tweetsIdeaBodyCap,
				"Already distilled ideas for context:",
				"Generate 3-5 high-signal tweets derived from these notes.")},
		},
		Temperature: 0.82,
		MaxTokens:   800,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	return decodeList[string](raw, "tweets")
}

// Thread generates a numbered, single-narrative Twitter thread.
func (e *Engine) Thread(ctx context.Context, in SocialInput) ([]ThreadTweet, error) {
	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: threadSystemPrompt + voiceBlock(in.Voice)},
			{Role: llm.RoleUser, Content: socialUserPrompt(in, threadNotesLimit, threadIdeaBodyCap,
				"Distilled ideas to weave into the thread:",
				"Transform these notes into a single, flowing Twitter thread.")},
		},
		Temperature: 0.78,
		MaxTokens:   1800,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	return decodeList[ThreadTweet](raw, "thread")
}

// LinkedIn generates the three LinkedIn post variants.
func (e *Engine) LinkedIn(ctx context.Context, in SocialInput) (*LinkedInPosts, error) {
	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: linkedInSystemPrompt + voiceBlock(in.Voice)},
			{Role: llm.RoleUser, Content: socialUserPrompt(in, threadNotesLimit, threadIdeaBodyCap,
				"Distilled ideas for context:",
				"Write the three LinkedIn post variants from these notes.")},
		},
		Temperature: 0.78,
		MaxTokens:   1800,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var posts LinkedInPosts
	if err := decodeObject(raw, &posts); err != nil {
		return nil, err
	}
	return &posts, nil
}

// Repurpose rewrites a thread as one LinkedIn post.
func (e *Engine) Repurpose(ctx context.Context, in RepurposeInput) (string, error) {
	var b strings.Builder
	if in.BookTitle != "" {
		fmt.Fprintf(&b, "The thread is about %q by %s.\n\n", in.BookTitle, in.Author)
	}
	b.WriteString("Thread:\n")
	for _, t := range in.Thread {
		fmt.Fprintf(&b, "%d/ %s\n", t.Number, t.Text)
	}
	b.WriteString("\nRewrite this thread as a single LinkedIn post.")

	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: repurposeSystemPrompt + voiceBlock(in.Voice)},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.75,
		MaxTokens:   1200,
		JSONMode:    true,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Post string `json:"post"`
	}
	if err := decodeObject(raw, &out); err != nil {
		return "", err
	}
	return out.Post, nil
}

// Narrative clusters idea cards across books into themes and writes
// the macro narrative connecting them.
func (e *Engine) Narrative(ctx context.Context, books []NarrativeBook) (*NarrativeResult, error) {
	var b strings.Builder
	b.WriteString("Here are the idea cards from the reader's library:\n\n")
	for i, book := range books {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "### %s by %s\n", book.Title, book.Author)
		for j, idea := range book.Ideas {
			if j > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "- **%s**: %s [tags: %s]", idea.Title, idea.Body, strings.Join(idea.Tags, ", "))
		}
	}
	b.WriteString("\n\nGenerate thematic clusters and a macro narrative.")

	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: narrativeSystemPrompt},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.75,
		MaxTokens:   2500,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result NarrativeResult
	if err := decodeObject(raw, &result); err != nil {
		return nil, err
	}
	if result.Themes == nil {
		result.Themes = []Theme{}
	}
	return &result, nil
}

// Digest writes the weekly newsletter from recent idea cards.
func (e *Engine) Digest(ctx context.Context, in DigestInput) (*DigestResult, error) {
	var b strings.Builder
	b.WriteString("This week's distilled ideas, grouped by book:\n\n")
	for _, book := range in.Books {
		fmt.Fprintf(&b, "### %s by %s\n", book.Title, book.Author)
		for _, idea := range book.Ideas {
			fmt.Fprintf(&b, "- %s: %s\n", idea.Title, idea.Body)
		}
		b.WriteByte('\n')
	}
	if in.TopArticle != nil {
		fmt.Fprintf(&b, "Article pick candidate: %q (%s) %s\n\n", in.TopArticle.Title, in.TopArticle.Domain, in.TopArticle.URL)
	}
	b.WriteString("Assemble the weekly digest.")

	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: digestSystemPrompt + voiceBlock(in.Voice)},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.7,
		MaxTokens:   1200,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	var result DigestResult
	if err := decodeObject(raw, &result); err != nil {
		return nil, err
	}
	if result.KeyIdeas == nil {
		result.KeyIdeas = []DigestKeyIdea{}
	}
	return &result, nil
}

// ClassifyStances labels each article supporting, opposing, or neutral
// relative to the thesis, aligned by index. Callers decide the
// fallback when classification fails.
func (e *Engine) ClassifyStances(ctx context.Context, articles []StanceArticle, thesis string) ([]domain.Stance, error) {
	if len(articles) == 0 {
		return []domain.Stance{}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Book thesis: %q\n\nArticles:\n", thesis)
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. Title: %q | Snippet: %q\n", i+1, a.Title, truncate(a.Snippet, 200))
	}
	b.WriteString("\nClassify each article's stance toward the thesis.")

	raw, err := e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: stanceSystemPrompt},
			{Role: llm.RoleUser, Content: b.String()},
		},
		Temperature: 0.2,
		MaxTokens:   300,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	labels, err := decodeList[string](raw, "stances")
	if err != nil {
		return nil, err
	}

	stances := make([]domain.Stance, len(articles))
	for i := range stances {
		stances[i] = domain.StanceNeutral
		if i < len(labels) && domain.Stance(labels[i]).Valid() {
			stances[i] = domain.Stance(labels[i])
		}
	}
	return stances, nil
}

// socialUserPrompt assembles the shared user prompt for tweet, thread,
// and LinkedIn generation.
func socialUserPrompt(in SocialInput, notesLimit, ideaBodyCap int, ideasHeader, instruction string) string {
	chapter := in.ChapterName
	if chapter == "" {
		chapter = "Key Insights"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Book: %q by %s\nChapter: %s\n\nNotes:\n\"\"\"\n%s\n\"\"\"\n\n",
		in.BookTitle, in.Author, chapter, truncate(in.NotesContent, notesLimit))
	if len(in.Ideas) > 0 {
		b.WriteString(ideasHeader)
		b.WriteByte('\n')
		for _, idea := range in.Ideas {
			fmt.Fprintf(&b, "• %s: %s\n", idea.Title, truncate(idea.Body, ideaBodyCap))
		}
		b.WriteByte('\n')
	}
	b.WriteString(instruction)
	return b.String()
}
