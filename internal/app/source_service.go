package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/pkg/pdfextract"
	"github.com/YeswanthC7/keepkind/internal/rag"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

const (
	defaultTextSourceURI = "text-source"
	defaultPDFSourceURI  = "pdf-source"
)

type SourceService struct {
	itemRepo     *repository.ItemRepository
	sourceRepo   *repository.SourceRepository
	chunkSize    int
	chunkOverlap int
}

func NewSourceService(
	itemRepo *repository.ItemRepository,
	sourceRepo *repository.SourceRepository,
	chunkSize, chunkOverlap int,
) *SourceService {
	if chunkSize <= 0 {
		chunkSize = rag.DefaultChunkSize
		chunkOverlap = rag.DefaultChunkOverlap
	}
	return &SourceService{
		itemRepo:     itemRepo,
		sourceRepo:   sourceRepo,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

type AddTextSourceInput struct {
	ItemID     uint
	Title      string
	Text       string
	TrustLevel string
}

type AddPDFSourceInput struct {
	ItemID     uint
	Title      string
	FileName   string
	TrustLevel string
	Data       []byte
}

type IngestResult struct {
	SourceID      uint   `json:"sourceId"`
	ItemID        uint   `json:"itemId"`
	Type          string `json:"type"`
	URI           string `json:"uri"`
	ContentHash   string `json:"contentHash"`
	ChunksCreated int    `json:"chunksCreated"`
}

// AddText stores a text source and its chunks. Chunks are created without
// embeddings.
func (s *SourceService) AddText(ctx context.Context, input AddTextSourceInput) (*IngestResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, invalidInput("text is required")
	}
	uri := firstNonBlank(input.Title, defaultTextSourceURI)
	return s.ingest(ctx, input.ItemID, model.SourceTypeText, uri, input.TrustLevel, hashHex([]byte(input.Text)), input.Text)
}

// AddPDF extracts the PDF's plain text and ingests it like a text source. The
// content hash covers the uploaded file bytes.
func (s *SourceService) AddPDF(ctx context.Context, input AddPDFSourceInput) (*IngestResult, error) {
	if len(input.Data) == 0 {
		return nil, invalidInput("file is required")
	}
	text, err := pdfextract.ExtractText(input.Data)
	if err != nil {
		return nil, invalidInput(fmt.Sprintf("read pdf: %v", err))
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalidInput("pdf has no extractable text")
	}
	uri := firstNonBlank(input.Title, firstNonBlank(input.FileName, defaultPDFSourceURI))
	return s.ingest(ctx, input.ItemID, model.SourceTypePDF, uri, input.TrustLevel, hashHex(input.Data), text)
}

func (s *SourceService) ingest(ctx context.Context, itemID uint, sourceType, uri, trust, hash, text string) (*IngestResult, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	source := &model.Source{
		ItemID:      itemID,
		Type:        sourceType,
		URI:         uri,
		TrustLevel:  firstNonBlank(trust, model.DefaultTrustLevel),
		ContentHash: hash,
	}
	parts := rag.Chunk(text, s.chunkSize, s.chunkOverlap)
	chunks, err := s.sourceRepo.CreateWithChunks(ctx, source, parts)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "source ingested",
		"item_id", itemID, "source_id", source.ID, "type", sourceType, "chunks", len(chunks))

	return &IngestResult{
		SourceID:      source.ID,
		ItemID:        itemID,
		Type:          sourceType,
		URI:           uri,
		ContentHash:   hash,
		ChunksCreated: len(chunks),
	}, nil
}

func hashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func firstNonBlank(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}
