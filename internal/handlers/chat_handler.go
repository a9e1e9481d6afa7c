package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

var queryRequestMessages = map[string]string{
	"Query.required": "Query cannot be empty",
	"Query.max":      "Query is too long (max 1000 characters)",
	"UserID.max":     "Invalid user ID",
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService interfaces.ChatService, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// QueryHandler handles POST /api/chat/query requests
func (h *ChatHandler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode query request")
		WriteDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req, queryRequestMessages); err != nil {
		WriteServiceError(w, err)
		return
	}

	result, err := h.chatService.Answer(r.Context(), models.Query{
		Text:         req.Query,
		UserID:       req.UserID,
		SystemPrompt: req.SystemPrompt,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Query processing failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// HistoryHandler handles GET /api/chat/history/{user_id} requests
func (h *ChatHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/api/chat/history/")
	if userID == "" || strings.Contains(userID, "/") || len(userID) > models.MaxIdentifierLength {
		WriteDetail(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages := h.chatService.History(userID)

	WriteJSON(w, http.StatusOK, models.HistoryResponse{
		UserID:       userID,
		MessageCount: len(messages),
		Messages:     messages,
	})
}

// HealthHandler handles GET /api/chat/health requests
func (h *ChatHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, h.chatService.Health(r.Context()))
}
