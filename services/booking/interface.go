package booking

import (
	"context"

	commerceRepo "closetcircle/database/repository/commerce"
	"closetcircle/models"

	"go.uber.org/zap"
)

// BookingService adds the selected item of a session to the user's cart.
type BookingService interface {
	Book(ctx context.Context, state models.SessionState, identity string) (models.Reply, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Carts  commerceRepo.CartRepository
	Events EventPublisher
	Logger *zap.Logger
}

func NewBookingService(carts commerceRepo.CartRepository, events EventPublisher, logger *zap.Logger) *DefaultBookingService {
	if events == nil {
		events = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{Carts: carts, Events: events, Logger: logger}
}

func (s *DefaultBookingService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) events() EventPublisher {
	if s.Events == nil {
		return NoopPublisher{}
	}
	return s.Events
}

type conversationKey struct{}

// WithConversationID tags ctx with the conversation a booking belongs to.
func WithConversationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationKey{}, id)
}

func conversationID(ctx context.Context) string {
	id, _ := ctx.Value(conversationKey{}).(string)
	return id
}
