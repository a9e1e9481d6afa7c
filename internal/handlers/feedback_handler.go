package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

var feedbackRequestMessages = map[string]string{
	"QueryID":      "Invalid query ID",
	"UserID":       "Invalid user ID",
	"Rating":       "Rating must be an integer between 1 and 5",
	"FeedbackText": "Feedback text is too long (max 500 characters)",
}

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	feedbackService interfaces.FeedbackService
	logger          arbor.ILogger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService interfaces.FeedbackService, logger arbor.ILogger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// SubmitHandler handles POST /api/feedback/submit requests
func (h *FeedbackHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode feedback request")
		WriteDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req, feedbackRequestMessages); err != nil {
		WriteServiceError(w, err)
		return
	}

	message, err := h.feedbackService.Submit(r.Context(), models.Feedback{
		QueryID:      req.QueryID,
		UserID:       req.UserID,
		Rating:       req.Rating,
		FeedbackText: req.FeedbackText,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to submit feedback")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.FeedbackResponse{
		Success: true,
		Message: message,
	})
}

// MetricsHandler handles GET /api/feedback/metrics requests
func (h *FeedbackHandler) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, h.feedbackService.Metrics(r.Context()))
}
