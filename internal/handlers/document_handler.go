package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

var uploadRequestMessages = map[string]string{
	"Documents.required": "No documents provided",
	"Documents.min":      "No documents provided",
}

// DocumentHandler handles document index HTTP requests
type DocumentHandler struct {
	documentService interfaces.DocumentService
	logger          arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService interfaces.DocumentService, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// UploadHandler handles POST /api/documents/upload requests
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.DocumentUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode upload request")
		WriteDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req, uploadRequestMessages); err != nil {
		WriteServiceError(w, err)
		return
	}

	count, err := h.documentService.Upload(r.Context(), req.Documents)
	if err != nil {
		h.logger.Error().Err(err).Msg("Document indexing failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.UploadResponse{
		Success:          true,
		DocumentsIndexed: count,
		Message:          fmt.Sprintf("Successfully indexed %d documents", count),
	})
}

// DeleteHandler handles DELETE /api/documents/{doc_id} requests
func (h *DocumentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	docID := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if docID == "" || strings.Contains(docID, "/") {
		WriteDetail(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	deleted, err := h.documentService.Delete(r.Context(), docID)
	if err != nil {
		h.logger.Error().Err(err).Str("document_id", docID).Msg("Document deletion failed")
		WriteServiceError(w, err)
		return
	}

	message := fmt.Sprintf("Document %s deleted", docID)
	if !deleted {
		message = fmt.Sprintf("Document %s not found", docID)
	}
	WriteJSON(w, http.StatusOK, models.DeleteResponse{
		Success: deleted,
		Message: message,
	})
}

// HealthHandler handles GET /api/documents/health requests
func (h *DocumentHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	health, err := h.documentService.Health(r.Context())
	if err != nil {
		WriteJSON(w, http.StatusOK, models.IndexHealth{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, health)
}
