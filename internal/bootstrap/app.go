package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/ai"
	appsvc "github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/cache"
	"github.com/YeswanthC7/keepkind/internal/config"
	"github.com/YeswanthC7/keepkind/internal/platform/database"
	rabbitmqClient "github.com/YeswanthC7/keepkind/internal/platform/rabbitmq"
	redisClient "github.com/YeswanthC7/keepkind/internal/platform/redis"
)

// App owns every long-lived resource. Redis and MQConn are nil when their
// feature is disabled.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	MQConn   *amqp.Connection
	LLM      ai.Client
	Services *Services

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	SetupLogger(cfg)

	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	a.DB = db
	if err := database.Migrate(db); err != nil {
		return err
	}

	var embeddingCache *cache.EmbeddingCache
	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		embeddingCache = cache.NewEmbeddingCache(a.Redis, cfg.EmbeddingTTL())
	}

	var publisher appsvc.ReceiptEventPublisher
	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ReceiptEventsQueue)
		if err != nil {
			return err
		}
		publisher = rabbitmqClient.NewReceiptEventPublisher(a.MQConn, cfg.RabbitMQ.ReceiptEventsQueue)
	}

	a.LLM, err = ai.New(cfg.LLM, cfg.LLMTimeout())
	if err != nil {
		return err
	}

	a.Services = NewServices(cfg, db, a.LLM, embeddingCache, publisher)

	slog.Info("app initialized",
		"db_driver", cfg.Database.Driver,
		"llm_provider", cfg.LLM.Provider,
		"chat_model", cfg.LLM.ChatModel,
		"embedding_model", cfg.LLM.EmbeddingModel,
		"redis", cfg.Redis.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled)
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
