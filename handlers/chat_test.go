package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexbook/models"
	"lexbook/services/chat"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

type memoryContextStore struct {
	contexts map[string]*models.ChatContext
}

func (m *memoryContextStore) Get(ctx context.Context, visitorID string) (*models.ChatContext, error) {
	if c, ok := m.contexts[visitorID]; ok {
		return c, nil
	}
	return &models.ChatContext{}, nil
}

func (m *memoryContextStore) Set(ctx context.Context, visitorID string, chatCtx *models.ChatContext) error {
	m.contexts[visitorID] = chatCtx
	return nil
}

func (m *memoryContextStore) Clear(ctx context.Context, visitorID string) error {
	delete(m.contexts, visitorID)
	return nil
}

func newChatRouter(gen *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &memoryContextStore{contexts: make(map[string]*models.ChatContext)}
	svc := chat.NewService(gen, store, zap.NewNop())
	h := NewChatHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/api/chat", h.Message)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChatReply(t *testing.T) {
	r := newChatRouter(&stubGenerator{reply: "We are open 9 to 6."})

	w := postChat(t, r, `{"visitorId":"v1","message":"Office hours?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "v1", body["visitorId"])
	assert.Equal(t, "We are open 9 to 6.", body["reply"])
}

func TestChatAssignsVisitorID(t *testing.T) {
	r := newChatRouter(&stubGenerator{reply: "Hello!"})

	w := postChat(t, r, `{"message":"Hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["visitorId"])
}

func TestChatFallbackOnGenerationFailure(t *testing.T) {
	r := newChatRouter(&stubGenerator{err: errors.New("quota exceeded")})

	w := postChat(t, r, `{"visitorId":"v1","message":"Hi"}`)
	// The widget always has something to show.
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, chat.FallbackReply, body["reply"])
	assert.Equal(t, true, body["fallback"])
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	r := newChatRouter(&stubGenerator{reply: "Hello"})

	w := postChat(t, r, `{"visitorId":"v1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
