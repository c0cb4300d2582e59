package ai

import (
	"context"

	"closetcircle/models"
)

// Understander turns one raw user message into an {intent, entities} record.
type Understander interface {
	Understand(ctx context.Context, text string) models.Understanding
}

// ConversationStore persists conversations between turns.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	Set(ctx context.Context, conv *models.Conversation) error
	ClearSession(ctx context.Context, conversationID string) error
	Clear(ctx context.Context, conversationID string) error
}

// AIService is the assistant surface used by the HTTP handlers.
type AIService interface {
	ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
	Search(ctx context.Context, conversationID string, record []byte) (*models.AIResponse, error)
	Next(ctx context.Context, conversationID string) (*models.AIResponse, error)
	Book(ctx context.Context, conversationID, email string) (*models.AIResponse, error)
	SetIdentity(ctx context.Context, conversationID, email string) error
	ResetSession(ctx context.Context, conversationID string, forgetIdentity bool) error
}

var (
	_ Understander      = (*GeminiClient)(nil)
	_ Understander      = (*KeywordUnderstander)(nil)
	_ ConversationStore = (*RedisContextStore)(nil)
)
