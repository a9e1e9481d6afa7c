package models

// Wire-level request and response shapes for the HTTP API. Validation tags
// enforce size bounds before requests reach the services.

// QueryRequest is the body of POST /api/chat/query.
type QueryRequest struct {
	Query        string `json:"query" validate:"required,max=1000"`
	UserID       string `json:"user_id,omitempty" validate:"omitempty,max=100"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// DocumentUploadRequest is the body of POST /api/documents/upload.
type DocumentUploadRequest struct {
	Documents []Document `json:"documents" validate:"required,min=1"`
}

// UploadResponse acknowledges an upload.
type UploadResponse struct {
	Success          bool   `json:"success"`
	DocumentsIndexed int    `json:"documents_indexed"`
	Message          string `json:"message"`
}

// FeedbackRequest is the body of POST /api/feedback/submit.
type FeedbackRequest struct {
	QueryID      string `json:"query_id" validate:"required,max=100"`
	UserID       string `json:"user_id" validate:"required,max=100"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	FeedbackText string `json:"feedback_text,omitempty" validate:"omitempty,max=500"`
}

// FeedbackResponse acknowledges a feedback submission.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HistoryResponse is the body of GET /api/chat/history/{user_id}.
type HistoryResponse struct {
	UserID       string              `json:"user_id"`
	MessageCount int                 `json:"message_count"`
	Messages     []ConversationEntry `json:"messages"`
}

// ErrorResponse carries a human-readable error detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DeleteResponse acknowledges a document deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
