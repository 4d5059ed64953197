package rag

import (
	"strconv"
	"strings"

	"github.com/YeswanthC7/keepkind/internal/model"
)

// DeclineSentence is what the model must say when the context does not
// support an answer. The receipt parser falls back to it as well.
const DeclineSentence = "I don't have enough information in the provided sources."

// Recommendations is the closed set the receipt prompt asks the model for.
var Recommendations = []string{"maintain", "repair", "resell", "recycle", "keep"}

const answerSystemPrompt = `You are KeepKind. Answer using ONLY the provided context.
If the answer is not in the context, say: "` + DeclineSentence + `"
Do not guess. Keep it concise.
`

var receiptSystemPrompt = `You are KeepKind. Create a decision receipt using ONLY the provided context.
Output MUST be in this exact format:

RECOMMENDATION: <one of ` + strings.Join(Recommendations, "|") + `>
RATIONALE: <1-3 short sentences, grounded in context>
ASSUMPTIONS: <comma-separated list, or 'none'>

If context is insufficient, use:
RECOMMENDATION: keep
RATIONALE: ` + DeclineSentence + `
ASSUMPTIONS: none
`

// Prompt is a system/user message pair for the chat model.
type Prompt struct {
	System string
	User   string
}

// ContextBlock labels each retrieved chunk with its id and source, in
// retrieval order.
func ContextBlock(chunks []model.ScoredChunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString("CHUNK ")
		b.WriteString(strconv.FormatUint(uint64(c.ID), 10))
		b.WriteString(" (source ")
		b.WriteString(strconv.FormatUint(uint64(c.SourceID), 10))
		b.WriteString("):\n")
		b.WriteString(c.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

func AnswerPrompt(question string, chunks []model.ScoredChunk) Prompt {
	return Prompt{System: answerSystemPrompt, User: userPrompt(question, chunks)}
}

func ReceiptPrompt(question string, chunks []model.ScoredChunk) Prompt {
	return Prompt{System: receiptSystemPrompt, User: userPrompt(question, chunks)}
}

func userPrompt(question string, chunks []model.ScoredChunk) string {
	return "Question:\n" + question + "\n\nContext:\n" + ContextBlock(chunks)
}
