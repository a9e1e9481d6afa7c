package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/docuassist/internal/models"
)

func TestRelevanceLabel(t *testing.T) {
	assert.Equal(t, "High", relevanceLabel(0.95))
	assert.Equal(t, "High", relevanceLabel(0.81))
	assert.Equal(t, "Medium", relevanceLabel(0.8), "0.8 is not High")
	assert.Equal(t, "Medium", relevanceLabel(0.7))
	assert.Equal(t, "Low", relevanceLabel(0.6), "0.6 is not Medium")
	assert.Equal(t, "Low", relevanceLabel(0.1))
}

func TestBuildContextText(t *testing.T) {
	t.Log("=== Testing context block formatting ===")

	docs := []models.RetrievedDocument{
		{Text: "first document", RelevanceScore: 0.9},
		{Text: "second document", RelevanceScore: 0.7},
	}

	got := buildContextText(docs, 2000)
	assert.Equal(t,
		"[Document 1] (Relevance: High)\nfirst document\n\n[Document 2] (Relevance: Medium)\nsecond document",
		got)

	t.Log("✅ SUCCESS: documents numbered from 1 with relevance tiers")
}

func TestBuildContextTextEmpty(t *testing.T) {
	assert.Equal(t, "No relevant documentation found.", buildContextText(nil, 2000))
	assert.Equal(t, "No relevant documentation found.", buildContextText([]models.RetrievedDocument{}, 2000))
}

func TestBuildContextTextTruncation(t *testing.T) {
	docs := []models.RetrievedDocument{
		{Text: strings.Repeat("a", 50), RelevanceScore: 0.9},
	}

	got := buildContextText(docs, 10)
	assert.Contains(t, got, strings.Repeat("a", 10)+"...")
	assert.NotContains(t, got, strings.Repeat("a", 11))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", truncateText("hello", 10), "short text untouched")
	assert.Equal(t, "hello", truncateText("hello", 5), "exact length untouched")
	assert.Equal(t, "hell...", truncateText("hello", 4))
	assert.Equal(t, "hello", truncateText("hello", 0), "zero disables truncation")
}
