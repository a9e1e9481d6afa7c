package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI routes (embedded chat page)
	mux.HandleFunc("/", s.app.PageHandler.IndexHandler)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticHandler)

	// API routes - Chat
	mux.HandleFunc("/api/chat/query", s.app.ChatHandler.QueryHandler)
	mux.HandleFunc("/api/chat/history/", s.app.ChatHandler.HistoryHandler)
	mux.HandleFunc("/api/chat/health", s.app.ChatHandler.HealthHandler)

	// API routes - Documents
	mux.HandleFunc("/api/documents/upload", s.app.DocumentHandler.UploadHandler)
	mux.HandleFunc("/api/documents/health", s.app.DocumentHandler.HealthHandler)
	mux.HandleFunc("/api/documents/", s.app.DocumentHandler.DeleteHandler) // DELETE /{doc_id}

	// API routes - Feedback
	mux.HandleFunc("/api/feedback/submit", s.app.FeedbackHandler.SubmitHandler)
	mux.HandleFunc("/api/feedback/metrics", s.app.FeedbackHandler.MetricsHandler)

	return mux
}
