package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/platform/database/dbtest"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

// letterEmbedder maps text to its 26 letter counts.
type letterEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *letterEmbedder) EmbedOne(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	vec[0] += 0.001
	return vec, nil
}

func (e *letterEmbedder) EmbeddingModel() string { return "letters-embed" }

type fakeGenerator struct {
	mu     sync.Mutex
	reply  string
	err    error
	system string
	user   string
}

func (g *fakeGenerator) Chat(_ context.Context, system, user string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.system, g.user = system, user
	return g.reply, g.err
}

func (g *fakeGenerator) ChatModel() string { return "fake-chat" }

type fakePublisher struct {
	mu     sync.Mutex
	events []model.ReceiptEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event model.ReceiptEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db         *gorm.DB
	embedder   *letterEmbedder
	generator  *fakeGenerator
	publisher  *fakePublisher
	items      *ItemService
	sources    *SourceService
	embeddings *EmbeddingService
	ask        *AskService
	receipts   *ReceiptService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	itemRepo := repository.NewItemRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	f := &fixture{
		db:        db,
		embedder:  &letterEmbedder{},
		generator: &fakeGenerator{},
		publisher: &fakePublisher{},
	}
	retriever := NewRetriever(chunkRepo, f.embedder, nil)
	f.items = NewItemService(itemRepo)
	f.sources = NewSourceService(itemRepo, sourceRepo, 800, 120)
	f.embeddings = NewEmbeddingService(sourceRepo, chunkRepo, f.embedder)
	f.ask = NewAskService(retriever, chunkRepo, f.generator)
	f.receipts = NewReceiptService(itemRepo, receiptRepo, retriever, f.generator, f.publisher, Provenance{
		ChatModel:     "llama3.2:3b",
		EmbedModel:    "nomic-embed-text",
		PromptVersion: "receipt-v1",
	})
	return f
}

func (f *fixture) item(t *testing.T) *model.Item {
	t.Helper()
	item, err := f.items.Create(context.Background(), CreateItemInput{Name: "Washer", Category: "appliance"})
	require.NoError(t, err)
	return item
}

func (f *fixture) embeddedSource(t *testing.T, itemID uint, text string) *IngestResult {
	t.Helper()
	ctx := context.Background()
	res, err := f.sources.AddText(ctx, AddTextSourceInput{ItemID: itemID, Text: text})
	require.NoError(t, err)
	_, err = f.embeddings.EmbedSource(ctx, res.SourceID, false)
	require.NoError(t, err)
	return res
}

var errBoom = errors.New("boom")
