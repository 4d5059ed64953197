package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, 800, cfg.RAG.ChunkSize)
	assert.Equal(t, 120, cfg.RAG.ChunkOverlap)
	assert.Equal(t, "receipt-v1", cfg.RAG.PromptVersion)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[database]
driver = "sqlite"
sqlite_path = "/tmp/kk.db"

[llm]
provider = "openai"
chat_model = "gpt-4o-mini"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LLM_CHAT_MODEL", "gpt-4.1-mini")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/kk.db", cfg.DSN())
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.ChatModel)
	assert.True(t, cfg.Redis.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }},
		{"zero chunk size", func(c *Config) { c.RAG.ChunkSize = 0 }},
		{"overlap not below size", func(c *Config) { c.RAG.ChunkOverlap = c.RAG.ChunkSize }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "host=127.0.0.1 port=5432 user=keepkind password=keepkind dbname=keepkind sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.Database.Driver = DriverMySQL
	cfg.Database.Port = 3306
	cfg.Database.Params = "parseTime=true"
	assert.Equal(t, "keepkind:keepkind@tcp(127.0.0.1:3306)/keepkind?parseTime=true", cfg.DSN())
}
