package pipeline

import (
	"fmt"
	"strings"

	"github.com/ternarybob/docuassist/internal/models"
)

// defaultSystemPrompt directs the model to answer only from supplied
// context and to state uncertainty when the context is insufficient.
const defaultSystemPrompt = `You are DocuAssist, an AI customer support assistant for a software company.
Your role is to provide accurate, helpful responses based on company documentation.

Guidelines:
1. Answer questions based ONLY on the provided context/documentation
2. If the context doesn't contain the answer, clearly state this
3. Be concise and professional
4. Provide actionable solutions when possible
5. Avoid hallucinating information not in the documentation
6. If you're unsure, acknowledge uncertainty rather than guessing`

// relevanceLabel buckets a similarity score for display in the context block.
func relevanceLabel(score float64) string {
	switch {
	case score > 0.8:
		return "High"
	case score > 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

// buildContextText formats retrieved documents into the context block fed
// to the completion model. Each document is truncated to maxDocSize to
// respect the prompt token budget. An empty result set yields a fixed
// marker so generation still runs on the system instruction alone.
func buildContextText(docs []models.RetrievedDocument, maxDocSize int) string {
	if len(docs) == 0 {
		return "No relevant documentation found."
	}

	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		text := truncateText(doc.Text, maxDocSize)
		parts = append(parts, fmt.Sprintf("[Document %d] (Relevance: %s)\n%s", i+1, relevanceLabel(doc.RelevanceScore), text))
	}
	return strings.Join(parts, "\n\n")
}

// truncateText bounds text to maxLen runes, appending an ellipsis marker
// when content was dropped. maxLen <= 0 disables truncation.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
