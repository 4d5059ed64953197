package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/YeswanthC7/keepkind/internal/model"
)

func newReceiptExport(receipt *model.Receipt) (*ReceiptExport, error) {
	content, err := RenderReceiptMarkdown(receipt)
	if err != nil {
		return nil, err
	}
	return &ReceiptExport{
		FileName: ExportFileName(receipt.ID),
		Content:  content,
	}, nil
}

func ExportFileName(receiptID uint) string {
	return fmt.Sprintf("keepkind-receipt-%d.md", receiptID)
}

// RenderReceiptMarkdown renders the downloadable receipt document.
func RenderReceiptMarkdown(r *model.Receipt) (string, error) {
	var b strings.Builder

	b.WriteString("# KeepKind Decision Receipt\n\n")
	fmt.Fprintf(&b, "**Receipt ID:** %d\n\n", r.ID)
	fmt.Fprintf(&b, "**Item ID:** %d\n\n", r.ItemID)
	fmt.Fprintf(&b, "**Created At:** %s\n\n", r.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "**Receipt Version:** %d\n\n", r.ReceiptVersion)

	b.WriteString("## Generation metadata\n")
	fmt.Fprintf(&b, "- chat_model: %s\n", r.ChatModel)
	fmt.Fprintf(&b, "- embed_model: %s\n", r.EmbedModel)
	fmt.Fprintf(&b, "- k_used: %d\n", r.KUsed)
	fmt.Fprintf(&b, "- prompt_version: %s\n\n", r.PromptVersion)

	b.WriteString("## Question\n")
	b.WriteString(r.Question + "\n\n")

	b.WriteString("## Recommendation\n")
	b.WriteString(r.Recommendation + "\n\n")

	b.WriteString("## Rationale\n")
	b.WriteString(r.Rationale + "\n\n")

	b.WriteString("## Assumptions\n")
	if len(r.Assumptions) == 0 {
		b.WriteString("none\n\n")
	} else {
		raw, err := json.Marshal([]string(r.Assumptions))
		if err != nil {
			return "", fmt.Errorf("marshal assumptions failed: %w", err)
		}
		b.Write(raw)
		b.WriteString("\n\n")
	}

	citations := []model.Citation(r.Citations)
	if citations == nil {
		citations = []model.Citation{}
	}
	raw, err := json.Marshal(citations)
	if err != nil {
		return "", fmt.Errorf("marshal citations failed: %w", err)
	}
	b.WriteString("## Citations\n")
	b.WriteString("```json\n")
	b.Write(raw)
	b.WriteString("\n```\n")

	return b.String(), nil
}
