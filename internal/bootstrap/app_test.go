package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsvc "github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/config"
)

func sqliteConfig(t *testing.T, llmURL string) *config.Config {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "none.toml"))
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "kk.db")
	cfg.LLM.BaseURL = llmURL
	cfg.App.LogLevel = "error"
	return cfg
}

func TestNewWithConfig_SQLite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[[0.1,0.2]]}`))
	}))
	defer srv.Close()

	a, err := NewWithConfig(context.Background(), sqliteConfig(t, srv.URL))
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.Nil(t, a.Redis)
	assert.Nil(t, a.MQConn)
	require.NotNil(t, a.Services)
	assert.Equal(t, "nomic-embed-text", a.LLM.EmbeddingModel())

	item, err := a.Services.Items.Create(context.Background(), appsvc.CreateItemInput{Name: "Bike"})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	probe, err := a.Services.Embeddings.Probe(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, probe.Dims)
}

func TestNewWithConfig_BadProvider(t *testing.T) {
	cfg := sqliteConfig(t, "http://127.0.0.1:1")
	cfg.LLM.Provider = config.ProviderOpenAI

	_, err := NewWithConfig(context.Background(), cfg)
	assert.Error(t, err, "openai without api key")
}
