package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/rag"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

const (
	DefaultReceiptListLimit = 20
	MaxReceiptListLimit     = 100

	publishTimeout = 3 * time.Second
)

// Provenance is stamped on every receipt the service creates.
type Provenance struct {
	ChatModel     string
	EmbedModel    string
	PromptVersion string
}

type ReceiptService struct {
	itemRepo    *repository.ItemRepository
	receiptRepo *repository.ReceiptRepository
	retriever   *Retriever
	generator   Generator
	publisher   ReceiptEventPublisher
	provenance  Provenance
}

func NewReceiptService(
	itemRepo *repository.ItemRepository,
	receiptRepo *repository.ReceiptRepository,
	retriever *Retriever,
	generator Generator,
	publisher ReceiptEventPublisher,
	provenance Provenance,
) *ReceiptService {
	return &ReceiptService{
		itemRepo:    itemRepo,
		receiptRepo: receiptRepo,
		retriever:   retriever,
		generator:   generator,
		publisher:   publisher,
		provenance:  provenance,
	}
}

// Create retrieves context, asks the model for a decision receipt and stores
// the parsed result under the item's next version. Nothing is written unless
// every step before the insert succeeded.
func (s *ReceiptService) Create(ctx context.Context, itemID uint, question string, k int) (*model.Receipt, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalidInput("q is required")
	}
	k = clamp(k, 1, MaxAskTopK)

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	chunks, err := s.retriever.Retrieve(ctx, itemID, question, k)
	if err != nil {
		return nil, err
	}

	prompt := rag.ReceiptPrompt(question, chunks)
	out, err := s.generator.Chat(ctx, prompt.System, prompt.User)
	if err != nil {
		return nil, err
	}
	parsed := rag.ParseReceipt(out)
	if parsed.Outcome == rag.OutcomeFallback {
		slog.WarnContext(ctx, "receipt output had no labels, using fallback",
			"item_id", itemID, "context_chunks", len(chunks))
	}

	citations := make([]model.Citation, 0, len(chunks))
	for _, c := range chunks {
		citations = append(citations, model.Citation{
			ChunkID:  c.ID,
			SourceID: c.SourceID,
			Distance: c.Distance,
		})
	}

	receipt := &model.Receipt{
		ItemID:         itemID,
		Question:       question,
		Recommendation: parsed.Recommendation,
		Rationale:      parsed.Rationale,
		Assumptions:    parsed.Assumptions,
		Citations:      citations,
		ChatModel:      s.provenance.ChatModel,
		EmbedModel:     s.provenance.EmbedModel,
		KUsed:          k,
		PromptVersion:  s.provenance.PromptVersion,
	}
	if err := s.receiptRepo.CreateVersioned(ctx, receipt); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	slog.InfoContext(ctx, "receipt created",
		"item_id", itemID, "receipt_id", receipt.ID, "version", receipt.ReceiptVersion,
		"outcome", parsed.Outcome.String())
	s.publish(ctx, model.ReceiptEventCreated, receipt)
	return receipt, nil
}

type ListReceiptsInput struct {
	ItemID         uint
	Limit          int
	Offset         int
	IncludeDeleted bool
}

type ReceiptPage struct {
	ItemID         uint            `json:"itemId"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
	IncludeDeleted bool            `json:"includeDeleted"`
	Count          int             `json:"count"`
	Total          int64           `json:"total"`
	Receipts       []model.Receipt `json:"receipts"`
}

func (s *ReceiptService) List(ctx context.Context, input ListReceiptsInput) (*ReceiptPage, error) {
	limit := clamp(input.Limit, 1, MaxReceiptListLimit)
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	receipts, total, err := s.receiptRepo.List(ctx, input.ItemID, limit, offset, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}
	return &ReceiptPage{
		ItemID:         input.ItemID,
		Limit:          limit,
		Offset:         offset,
		IncludeDeleted: input.IncludeDeleted,
		Count:          len(receipts),
		Total:          total,
		Receipts:       receipts,
	}, nil
}

func (s *ReceiptService) Latest(ctx context.Context, itemID uint) (*model.Receipt, error) {
	return found(s.receiptRepo.Latest(ctx, itemID))
}

// Get is the item-scoped lookup; deleted receipts are not found.
func (s *ReceiptService) Get(ctx context.Context, itemID, receiptID uint) (*model.Receipt, error) {
	return found(s.receiptRepo.GetForItem(ctx, itemID, receiptID))
}

// GetGlobal looks a receipt up by id alone, deleted or not.
func (s *ReceiptService) GetGlobal(ctx context.Context, receiptID uint) (*model.Receipt, error) {
	return found(s.receiptRepo.GetByID(ctx, receiptID))
}

// Delete soft-deletes a live receipt of the item. Deleting twice reports
// ErrReceiptNotFound.
func (s *ReceiptService) Delete(ctx context.Context, itemID, receiptID uint) error {
	receipt, err := s.Get(ctx, itemID, receiptID)
	if err != nil {
		return err
	}
	ok, err := s.receiptRepo.SoftDelete(ctx, itemID, receiptID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReceiptNotFound
	}

	slog.InfoContext(ctx, "receipt deleted", "item_id", itemID, "receipt_id", receiptID)
	s.publish(ctx, model.ReceiptEventDeleted, receipt)
	return nil
}

type ReceiptExport struct {
	FileName string
	Content  string
}

func (s *ReceiptService) Export(ctx context.Context, itemID, receiptID uint) (*ReceiptExport, error) {
	receipt, err := s.Get(ctx, itemID, receiptID)
	if err != nil {
		return nil, err
	}
	return newReceiptExport(receipt)
}

func (s *ReceiptService) ExportGlobal(ctx context.Context, receiptID uint) (*ReceiptExport, error) {
	receipt, err := s.GetGlobal(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return newReceiptExport(receipt)
}

func (s *ReceiptService) publish(ctx context.Context, eventType string, receipt *model.Receipt) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := model.ReceiptEvent{
		Type:           eventType,
		ReceiptID:      receipt.ID,
		ItemID:         receipt.ItemID,
		ReceiptVersion: receipt.ReceiptVersion,
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		slog.ErrorContext(ctx, "publish receipt event failed",
			"type", eventType, "receipt_id", receipt.ID, "error", err)
	}
}

func found(receipt *model.Receipt, err error) (*model.Receipt, error) {
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}
