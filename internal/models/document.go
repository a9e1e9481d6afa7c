package models

// Document is a unit of support content stored in the vector index.
// Uploaded via the documents API, embedded, and stored keyed by ID.
type Document struct {
	ID       string                 `json:"id"` // doc_{uuid}, assigned when absent
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// RetrievedDocument is a read-only projection of a Document plus its
// similarity score against the query vector. Result lists are ordered by
// non-increasing score.
type RetrievedDocument struct {
	Text           string  `json:"text"`
	RelevanceScore float64 `json:"relevance_score"` // in [0,1]
}

// IndexHealth reports vector index status and statistics.
type IndexHealth struct {
	Status       string `json:"status"` // "healthy" or "unhealthy"
	TotalVectors int    `json:"total_vectors"`
	IndexName    string `json:"index_name"`
	Error        string `json:"error,omitempty"`
}

// SystemHealth reports overall pipeline health by component.
type SystemHealth struct {
	Status     string                 `json:"status"`
	Components map[string]interface{} `json:"components,omitempty"`
	Error      string                 `json:"error,omitempty"`
}
