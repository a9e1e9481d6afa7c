package models

// MaxQueryLength bounds query text accepted by the pipeline.
const MaxQueryLength = 1000

// Query is an ephemeral user question. Not persisted beyond the
// conversation history store.
type Query struct {
	Text         string `json:"query"`
	UserID       string `json:"user_id,omitempty"`       // defaults to "anonymous"
	SystemPrompt string `json:"system_prompt,omitempty"` // overrides the default prompt
}

// LatencyMetrics breaks down pipeline timing for a single query.
// TotalLatencyMs is wall-clock over the whole pipeline, not the sum of the
// sub-latencies, so unmeasured overhead is accounted for.
type LatencyMetrics struct {
	RetrievalLatencyMs  float64 `json:"retrieval_latency_ms"` // embed + index query
	GenerationLatencyMs float64 `json:"generation_latency_ms"`
	TotalLatencyMs      float64 `json:"total_latency_ms"`
	DocumentCount       int     `json:"document_count"`
}

// QueryResult is the immutable outcome of one pipeline run, referenced
// later by QueryID when feedback arrives.
type QueryResult struct {
	QueryID            string              `json:"query_id"` // uuid v4
	Response           string              `json:"response"`
	RetrievedDocuments []RetrievedDocument `json:"retrieved_documents"`
	Metrics            LatencyMetrics      `json:"metrics"`
	Success            bool                `json:"success"`
	Mode               string              `json:"mode,omitempty"` // "demo" when served from the fallback knowledge base
}
