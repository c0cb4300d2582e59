package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"closetcircle/middleware"
	"closetcircle/models"
	ai "closetcircle/services/intelligence"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIService struct {
	lastReq     models.AIRequest
	lastConv    string
	lastEmail   string
	lastRecord  []byte
	lastAll     bool
	err         error
	identityErr error
	resetCalled bool
}

func (f *fakeAIService) reply(conv, intent string) (*models.AIResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AIResponse{ConversationID: conv, Intent: intent, ResponseText: "ok", Outcome: models.OutcomeSmallTalk}, nil
}

func (f *fakeAIService) ProcessUserInput(_ context.Context, req models.AIRequest) (*models.AIResponse, error) {
	f.lastReq = req
	return f.reply(req.ConversationID, models.IntentGreet)
}

func (f *fakeAIService) Search(_ context.Context, conv string, record []byte) (*models.AIResponse, error) {
	f.lastConv, f.lastRecord = conv, record
	return f.reply(conv, models.IntentFindItem)
}

func (f *fakeAIService) Next(_ context.Context, conv string) (*models.AIResponse, error) {
	f.lastConv = conv
	return f.reply(conv, models.IntentShowNextItem)
}

func (f *fakeAIService) Book(_ context.Context, conv, email string) (*models.AIResponse, error) {
	f.lastConv, f.lastEmail = conv, email
	return f.reply(conv, models.IntentBookItem)
}

func (f *fakeAIService) SetIdentity(_ context.Context, conv, email string) error {
	f.lastConv, f.lastEmail = conv, email
	return f.identityErr
}

func (f *fakeAIService) ResetSession(_ context.Context, conv string, all bool) error {
	f.lastConv, f.lastAll = conv, all
	f.resetCalled = true
	return f.err
}

func newTestRouter(svc ai.AIService, verifiedEmail string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAssistantHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if verifiedEmail != "" {
			c.Set(middleware.EmailKey, verifiedEmail)
		}
		c.Next()
	})
	r.POST("/message", h.HandleMessage)
	r.POST("/search", h.HandleSearch)
	r.POST("/next", h.HandleNext)
	r.POST("/book", h.HandleBook)
	r.POST("/identity", h.HandleIdentity)
	r.DELETE("/session/:conversationId", h.HandleResetSession)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleMessage(t *testing.T) {
	svc := &fakeAIService{}
	r := newTestRouter(svc, "")

	w := do(r, http.MethodPost, "/message", `{"conversationId":"c1","text":"hi","email":" a@x.com "}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ConversationID)
	assert.Equal(t, "ok", resp.ResponseText)
	assert.Equal(t, "a@x.com", svc.lastReq.Email)
}

func TestHandleMessageRejectsMissingText(t *testing.T) {
	r := newTestRouter(&fakeAIService{}, "")

	w := do(r, http.MethodPost, "/message", `{"conversationId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSearchForwardsRecord(t *testing.T) {
	svc := &fakeAIService{}
	r := newTestRouter(svc, "")

	body := `{"conversationId":"c2","understanding":{"intent":"find_item","entities":[{"entity":"color","value":["black","red"],"start":0,"end":5}]}}`
	w := do(r, http.MethodPost, "/search", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c2", svc.lastConv)

	u := ai.ParseUnderstanding(svc.lastRecord)
	require.Len(t, u.Entities, 1)
	assert.Equal(t, []string{"black", "red"}, u.Entities[0].Value.Values)
}

func TestHandleSearchMalformedRecordIsNotRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "numeric value", body: `{"conversationId":"c2","understanding":{"intent":"find_item","entities":[{"entity":"color","value":12,"start":0,"end":3}]}}`},
		{name: "missing start", body: `{"conversationId":"c2","understanding":{"intent":"find_item","entities":[{"entity":"color","value":"red","end":3}]}}`},
		{name: "no record", body: `{"conversationId":"c2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAIService{}
			r := newTestRouter(svc, "")

			w := do(r, http.MethodPost, "/search", tt.body)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, models.Fallback(), ai.ParseUnderstanding(svc.lastRecord))
		})
	}
}

func TestHandleBookPrefersVerifiedEmail(t *testing.T) {
	svc := &fakeAIService{}
	r := newTestRouter(svc, "verified@x.com")

	w := do(r, http.MethodPost, "/book", `{"conversationId":"c3","email":"claimed@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "verified@x.com", svc.lastEmail)
}

func TestHandleNextStoreFailure(t *testing.T) {
	svc := &fakeAIService{err: errors.New("redis down")}
	r := newTestRouter(svc, "")

	w := do(r, http.MethodPost, "/next", `{"conversationId":"c4"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Assistant unavailable")
}

func TestHandleIdentity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "stored", code: http.StatusOK},
		{name: "invalid email", err: ai.ErrInvalidEmail, code: http.StatusBadRequest},
		{name: "store down", err: errors.New("redis down"), code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAIService{identityErr: tt.err}
			r := newTestRouter(svc, "")

			w := do(r, http.MethodPost, "/identity", `{"conversationId":"c5","email":"a@x.com"}`)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "c5", svc.lastConv)
		})
	}
}

func TestHandleResetSession(t *testing.T) {
	svc := &fakeAIService{}
	r := newTestRouter(svc, "")

	w := do(r, http.MethodDelete, "/session/c6", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.resetCalled)
	assert.Equal(t, "c6", svc.lastConv)
	assert.False(t, svc.lastAll)

	w = do(r, http.MethodDelete, "/session/c6?all=true", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.lastAll)

	w = do(r, http.MethodDelete, "/session/c6?all=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
