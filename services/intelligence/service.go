package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"closetcircle/models"
	"closetcircle/services/booking"
	"closetcircle/services/discovery"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgGreet        = "Hi! I'm the Closet Circle assistant. What are you looking for today?"
	msgGoodbye      = "Goodbye! Come back any time to find something new to wear."
	msgBotChallenge = "I'm a bot that helps you find and book items on Closet Circle."
	msgFallback     = "Sorry, I didn't catch that. You can ask me to find an item by type, color, or brand."
)

// ErrInvalidEmail is returned when an identity is not a usable email address.
var ErrInvalidEmail = errors.New("invalid email address")

// AssistantService routes one recognised intent to exactly one engine operation
// and persists the resulting session patch.
type AssistantService struct {
	store     ConversationStore
	lu        Understander
	discovery discovery.DiscoveryService
	booking   booking.BookingService
	logger    *zap.Logger
}

func NewAssistantService(
	store ConversationStore,
	lu Understander,
	discoverySvc discovery.DiscoveryService,
	bookingSvc booking.BookingService,
	logger *zap.Logger,
) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		store:     store,
		lu:        lu,
		discovery: discoverySvc,
		booking:   bookingSvc,
		logger:    logger,
	}
}

// ProcessUserInput runs language understanding on the message and dispatches it.
func (s *AssistantService) ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	u := s.lu.Understand(ctx, req.Text)
	return s.dispatch(ctx, req.ConversationID, req.Email, u)
}

// Search runs a search from a raw {intent, entities} record produced by an
// external policy. The record goes through the same validation as LU output,
// so a malformed one searches with no entities and prompts for criteria.
func (s *AssistantService) Search(ctx context.Context, conversationID string, record []byte) (*models.AIResponse, error) {
	u := ParseUnderstanding(record)
	intent := models.IntentFindItem
	if u.Intent == models.IntentFallback {
		intent = models.IntentFallback
	}
	return s.turn(ctx, conversationID, "", intent, func(*models.Conversation) (models.Reply, error) {
		return s.discovery.Search(ctx, u.Entities)
	})
}

func (s *AssistantService) Next(ctx context.Context, conversationID string) (*models.AIResponse, error) {
	return s.turn(ctx, conversationID, "", models.IntentShowNextItem, func(conv *models.Conversation) (models.Reply, error) {
		return s.discovery.Next(ctx, conv.Session)
	})
}

func (s *AssistantService) Book(ctx context.Context, conversationID, email string) (*models.AIResponse, error) {
	return s.turn(ctx, conversationID, email, models.IntentBookItem, s.bookTurn(ctx))
}

// SetIdentity stores email in the conversation's identity slot.
func (s *AssistantService) SetIdentity(ctx context.Context, conversationID, email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	conv, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("load conversation: %w", err)
	}
	conv.Email = email
	if err := s.store.Set(ctx, conv); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// ResetSession clears the search session. With forgetIdentity the whole
// conversation is dropped, stored email included.
func (s *AssistantService) ResetSession(ctx context.Context, conversationID string, forgetIdentity bool) error {
	if forgetIdentity {
		if err := s.store.Clear(ctx, conversationID); err != nil {
			return fmt.Errorf("clear conversation: %w", err)
		}
		return nil
	}
	if err := s.store.ClearSession(ctx, conversationID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *AssistantService) dispatch(ctx context.Context, conversationID, email string, u models.Understanding) (*models.AIResponse, error) {
	var op func(conv *models.Conversation) (models.Reply, error)

	switch u.Intent {
	case models.IntentFindItem, models.IntentProvideItemType, models.IntentProvideColor:
		op = func(*models.Conversation) (models.Reply, error) {
			return s.discovery.Search(ctx, u.Entities)
		}
	case models.IntentShowNextItem, models.IntentDeny:
		op = func(conv *models.Conversation) (models.Reply, error) {
			return s.discovery.Next(ctx, conv.Session)
		}
	case models.IntentBookItem, models.IntentAffirm:
		op = s.bookTurn(ctx)
	case models.IntentGreet:
		op = smallTalk(msgGreet)
	case models.IntentGoodbye:
		op = smallTalk(msgGoodbye)
	case models.IntentBotChallenge:
		op = smallTalk(msgBotChallenge)
	default:
		op = smallTalk(msgFallback)
	}

	return s.turn(ctx, conversationID, email, u.Intent, op)
}

func (s *AssistantService) bookTurn(ctx context.Context) func(conv *models.Conversation) (models.Reply, error) {
	return func(conv *models.Conversation) (models.Reply, error) {
		return s.booking.Book(booking.WithConversationID(ctx, conv.ID), conv.Session, conv.Email)
	}
}

func smallTalk(text string) func(*models.Conversation) (models.Reply, error) {
	return func(*models.Conversation) (models.Reply, error) {
		return models.Reply{Text: text, Outcome: models.OutcomeSmallTalk, Patch: models.NoChange()}, nil
	}
}

// turn loads the conversation, runs one operation, applies its patch and saves.
// Engine errors are logged only: the reply already carries the user-facing message.
func (s *AssistantService) turn(
	ctx context.Context,
	conversationID, email, intent string,
	op func(conv *models.Conversation) (models.Reply, error),
) (*models.AIResponse, error) {
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	conv, err := s.store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if email = strings.TrimSpace(email); email != "" {
		if err := validate.Var(email, "required,email"); err != nil {
			s.logger.Warn("Ignoring invalid request email", zap.String("conversation_id", conversationID))
		} else {
			conv.Email = email
		}
	}

	reply, opErr := op(conv)
	log := s.logger.With(
		zap.String("conversation_id", conversationID),
		zap.String("intent", intent),
		zap.String("outcome", string(reply.Outcome)),
	)
	if opErr != nil {
		log.Info("Turn ended without success", zap.Error(opErr))
	} else {
		log.Debug("Turn completed")
	}

	conv.Session = reply.Patch.Apply(conv.Session)
	if err := s.store.Set(ctx, conv); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	return &models.AIResponse{
		ConversationID: conversationID,
		Intent:         intent,
		ResponseText:   reply.Text,
		ImageURL:       reply.ImageURL,
		Item:           reply.Item,
		Cart:           reply.Cart,
		Outcome:        reply.Outcome,
	}, nil
}
