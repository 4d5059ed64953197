package bootstrap

import (
	"gorm.io/gorm"

	appsvc "github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/cache"
	"github.com/YeswanthC7/keepkind/internal/config"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

type Services struct {
	Items      *appsvc.ItemService
	Sources    *appsvc.SourceService
	Embeddings *appsvc.EmbeddingService
	Ask        *appsvc.AskService
	Receipts   *appsvc.ReceiptService
}

// NewServices wires repositories and services. embeddingCache and publisher
// may be nil.
func NewServices(
	cfg *config.Config,
	db *gorm.DB,
	llm interface {
		appsvc.Embedder
		appsvc.Generator
	},
	embeddingCache *cache.EmbeddingCache,
	publisher appsvc.ReceiptEventPublisher,
) *Services {
	itemRepo := repository.NewItemRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	retriever := appsvc.NewRetriever(chunkRepo, llm, embeddingCache)

	return &Services{
		Items:      appsvc.NewItemService(itemRepo),
		Sources:    appsvc.NewSourceService(itemRepo, sourceRepo, cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
		Embeddings: appsvc.NewEmbeddingService(sourceRepo, chunkRepo, llm),
		Ask:        appsvc.NewAskService(retriever, chunkRepo, llm),
		Receipts: appsvc.NewReceiptService(itemRepo, receiptRepo, retriever, llm, publisher, appsvc.Provenance{
			ChatModel:     cfg.LLM.ChatModel,
			EmbedModel:    cfg.LLM.EmbeddingModel,
			PromptVersion: cfg.RAG.PromptVersion,
		}),
	}
}
