package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// mockChatService implements interfaces.ChatService with optional func fields
type mockChatService struct {
	answerFunc  func(ctx context.Context, query models.Query) (*models.QueryResult, error)
	historyFunc func(userID string) []models.ConversationEntry
}

func (m *mockChatService) Answer(ctx context.Context, query models.Query) (*models.QueryResult, error) {
	if m.answerFunc != nil {
		return m.answerFunc(ctx, query)
	}
	return &models.QueryResult{
		QueryID:            "q1",
		Response:           "canned answer",
		RetrievedDocuments: []models.RetrievedDocument{},
		Success:            true,
	}, nil
}

func (m *mockChatService) History(userID string) []models.ConversationEntry {
	if m.historyFunc != nil {
		return m.historyFunc(userID)
	}
	return []models.ConversationEntry{}
}

func (m *mockChatService) Health(ctx context.Context) *models.SystemHealth {
	return &models.SystemHealth{Status: "healthy"}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Detail
}

func TestQueryHandlerSuccess(t *testing.T) {
	t.Log("=== Testing query endpoint ===")

	var captured models.Query
	svc := &mockChatService{
		answerFunc: func(ctx context.Context, query models.Query) (*models.QueryResult, error) {
			captured = query
			return &models.QueryResult{QueryID: "q1", Response: "hello there", Success: true}, nil
		},
	}
	h := NewChatHandler(svc, arbor.NewLogger())

	rec := postJSON(t, h.QueryHandler, "/api/chat/query", `{"query":"How do I reset my password?","user_id":"u1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "How do I reset my password?", captured.Text)
	assert.Equal(t, "u1", captured.UserID)

	var result models.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "q1", result.QueryID)
	assert.Equal(t, "hello there", result.Response)
	assert.True(t, result.Success)

	t.Log("✅ SUCCESS: query round-trips through the handler")
}

func TestQueryHandlerValidation(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, arbor.NewLogger())

	rec := postJSON(t, h.QueryHandler, "/api/chat/query", `{"query":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query cannot be empty", decodeDetail(t, rec))

	long := strings.Repeat("a", 1001)
	rec = postJSON(t, h.QueryHandler, "/api/chat/query", `{"query":"`+long+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query is too long (max 1000 characters)", decodeDetail(t, rec))

	rec = postJSON(t, h.QueryHandler, "/api/chat/query", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeDetail(t, rec))
}

func TestQueryHandlerProviderFailure(t *testing.T) {
	svc := &mockChatService{
		answerFunc: func(ctx context.Context, query models.Query) (*models.QueryResult, error) {
			return nil, interfaces.NewProviderError("llm", context.DeadlineExceeded)
		},
	}
	h := NewChatHandler(svc, arbor.NewLogger())

	rec := postJSON(t, h.QueryHandler, "/api/chat/query", `{"query":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "Processing failed:")
}

func TestQueryHandlerTimeout(t *testing.T) {
	svc := &mockChatService{
		answerFunc: func(ctx context.Context, query models.Query) (*models.QueryResult, error) {
			return nil, interfaces.NewTimeoutError("llm", context.DeadlineExceeded)
		},
	}
	h := NewChatHandler(svc, arbor.NewLogger())

	rec := postJSON(t, h.QueryHandler, "/api/chat/query", `{"query":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	detail := decodeDetail(t, rec)
	assert.Contains(t, detail, "Processing failed:")
	assert.Contains(t, detail, "timed out", "timeout detail is distinguishable from other provider failures")
}

func TestQueryHandlerMethodNotAllowed(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/chat/query", nil)
	rec := httptest.NewRecorder()
	h.QueryHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHistoryHandler(t *testing.T) {
	svc := &mockChatService{
		historyFunc: func(userID string) []models.ConversationEntry {
			return []models.ConversationEntry{
				{QueryID: "q1", Query: "question", Response: "answer"},
			}
		},
	}
	h := NewChatHandler(svc, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/u1", nil)
	rec := httptest.NewRecorder()
	h.HistoryHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, 1, resp.MessageCount)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "question", resp.Messages[0].Query)
}

func TestHistoryHandlerInvalidUserID(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, arbor.NewLogger())

	for _, path := range []string{
		"/api/chat/history/",
		"/api/chat/history/" + strings.Repeat("u", 101),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.HistoryHandler(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewChatHandler(&mockChatService{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/chat/health", nil)
	rec := httptest.NewRecorder()
	h.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SystemHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}
