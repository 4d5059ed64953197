package app

import (
	"context"
	"strings"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/rag"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

const (
	DefaultTopK        = 5
	MaxAskTopK         = 10
	MaxVectorTopK      = 20
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

type AskService struct {
	retriever *Retriever
	chunkRepo *repository.ChunkRepository
	generator Generator
}

func NewAskService(retriever *Retriever, chunkRepo *repository.ChunkRepository, generator Generator) *AskService {
	return &AskService{
		retriever: retriever,
		chunkRepo: chunkRepo,
		generator: generator,
	}
}

type AskCitation struct {
	ChunkID    uint    `json:"chunkId"`
	SourceID   uint    `json:"sourceId"`
	ChunkIndex int     `json:"chunkIndex"`
	Distance   float64 `json:"distance"`
}

type AskResult struct {
	ItemID      uint          `json:"itemId"`
	Question    string        `json:"question"`
	Answer      string        `json:"answer"`
	ContextUsed int           `json:"contextUsed"`
	Citations   []AskCitation `json:"citations"`
}

// Ask answers the question from the item's nearest chunks. k is clamped to
// [1, MaxAskTopK].
func (s *AskService) Ask(ctx context.Context, itemID uint, question string, k int) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalidInput("q is required")
	}
	k = clamp(k, 1, MaxAskTopK)

	chunks, err := s.retriever.Retrieve(ctx, itemID, question, k)
	if err != nil {
		return nil, err
	}

	prompt := rag.AnswerPrompt(question, chunks)
	answer, err := s.generator.Chat(ctx, prompt.System, prompt.User)
	if err != nil {
		return nil, err
	}

	citations := make([]AskCitation, 0, len(chunks))
	for _, c := range chunks {
		citations = append(citations, AskCitation{
			ChunkID:    c.ID,
			SourceID:   c.SourceID,
			ChunkIndex: c.ChunkIndex,
			Distance:   c.Distance,
		})
	}

	return &AskResult{
		ItemID:      itemID,
		Question:    question,
		Answer:      answer,
		ContextUsed: len(chunks),
		Citations:   citations,
	}, nil
}

// VectorSearch returns the raw retrieval rows. k is clamped to [1, MaxVectorTopK].
func (s *AskService) VectorSearch(ctx context.Context, itemID uint, question string, k int) ([]model.ScoredChunk, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalidInput("q is required")
	}
	return s.retriever.Retrieve(ctx, itemID, question, clamp(k, 1, MaxVectorTopK))
}

type ChunkMatch struct {
	ID         uint   `json:"id"`
	SourceID   uint   `json:"source_id"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

// SearchChunks is a plain substring search, newest chunk first. limit is
// clamped to [1, MaxSearchLimit].
func (s *AskService) SearchChunks(ctx context.Context, itemID uint, text string, limit int) ([]ChunkMatch, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalidInput("q is required")
	}
	chunks, err := s.chunkRepo.SearchContent(ctx, itemID, text, clamp(limit, 1, MaxSearchLimit))
	if err != nil {
		return nil, err
	}
	out := make([]ChunkMatch, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, ChunkMatch{
			ID:         c.ID,
			SourceID:   c.SourceID,
			ChunkIndex: c.ChunkIndex,
			Content:    c.Content,
		})
	}
	return out, nil
}
