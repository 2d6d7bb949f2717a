package service

import (
	"strings"

	"github.com/yeabsiraa/ragbot-be/types"
)

const defaultSystemPrompt = "You are a helpful assistant. Answer questions using only the provided context and the conversation so far."

const formattingInstructions = "\n\nYour task is to provide a clear, informative, and beautifully formatted markdown response for each topic provided." +
	"\nInclude headings, bullet points, code blocks, and other markdown elements where appropriate."

// BuildSystemPrompt assembles the chain's system message: the per-bot
// override (or the default), fixed formatting instructions and the
// retrieved context.
func BuildSystemPrompt(override string, contextChunks []types.DocumentChunk) string {
	base := strings.TrimSpace(override)
	if base == "" {
		base = defaultSystemPrompt
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(formattingInstructions)
	b.WriteString("\n\nContext:\n")
	for i, chunk := range contextChunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk.Content)
	}
	return b.String()
}
