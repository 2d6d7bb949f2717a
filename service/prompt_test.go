package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeabsiraa/ragbot-be/types"
)

func TestBuildSystemPromptDefault(t *testing.T) {
	prompt := BuildSystemPrompt("", nil)

	assert.True(t, strings.HasPrefix(prompt, defaultSystemPrompt))
	assert.Contains(t, prompt, "markdown")
	assert.Contains(t, prompt, "Context:\n")
}

func TestBuildSystemPromptOverride(t *testing.T) {
	prompt := BuildSystemPrompt("  You are an ecommerce assistant.  ", nil)

	assert.True(t, strings.HasPrefix(prompt, "You are an ecommerce assistant."))
	assert.NotContains(t, prompt, defaultSystemPrompt)
}

func TestBuildSystemPromptIncludesContext(t *testing.T) {
	chunks := []types.DocumentChunk{
		{Content: "Shipping takes two days."},
		{Content: "Returns are free within 30 days."},
	}
	prompt := BuildSystemPrompt("", chunks)

	first := strings.Index(prompt, "Shipping takes two days.")
	second := strings.Index(prompt, "Returns are free within 30 days.")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first, "chunks keep retrieval order")
}
