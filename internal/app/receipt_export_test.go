package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YeswanthC7/keepkind/internal/model"
)

func TestRenderReceiptMarkdown(t *testing.T) {
	r := &model.Receipt{
		ID:             7,
		ItemID:         3,
		ReceiptVersion: 2,
		Question:       "Fix or replace?",
		Recommendation: "repair",
		Rationale:      "worn belt",
		Assumptions:    []string{"parts available"},
		Citations:      []model.Citation{{ChunkID: 11, SourceID: 4, Distance: 0.25}},
		ChatModel:      "llama3.2:3b",
		EmbedModel:     "nomic-embed-text",
		KUsed:          5,
		PromptVersion:  "receipt-v1",
		CreatedAt:      time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	md, err := RenderReceiptMarkdown(r)
	require.NoError(t, err)

	want := "# KeepKind Decision Receipt\n\n" +
		"**Receipt ID:** 7\n\n" +
		"**Item ID:** 3\n\n" +
		"**Created At:** 2025-03-01T10:30:00Z\n\n" +
		"**Receipt Version:** 2\n\n" +
		"## Generation metadata\n" +
		"- chat_model: llama3.2:3b\n" +
		"- embed_model: nomic-embed-text\n" +
		"- k_used: 5\n" +
		"- prompt_version: receipt-v1\n\n" +
		"## Question\nFix or replace?\n\n" +
		"## Recommendation\nrepair\n\n" +
		"## Rationale\nworn belt\n\n" +
		"## Assumptions\n[\"parts available\"]\n\n" +
		"## Citations\n```json\n[{\"chunkId\":11,\"sourceId\":4,\"distance\":0.25}]\n```\n"
	assert.Equal(t, want, md)
}

func TestRenderReceiptMarkdown_NoAssumptions(t *testing.T) {
	md, err := RenderReceiptMarkdown(&model.Receipt{ID: 1})
	require.NoError(t, err)
	assert.Contains(t, md, "## Assumptions\nnone\n\n")
	assert.Contains(t, md, "```json\n[]\n```\n")
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "keepkind-receipt-42.md", ExportFileName(42))
}
