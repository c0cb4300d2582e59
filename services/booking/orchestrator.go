package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"closetcircle/models"
	"closetcircle/services/discovery"

	"go.uber.org/zap"
)

const (
	msgNoItemSelected  = "Sorry, I don't have an item selected to book. Please search for an item first."
	msgNoIdentity      = "I don't know your account email. Please log in on the website or tell me your email so I can add this to your cart."
	msgCartUnavailable = "I couldn't create or find an active cart for you. Please try again later."
)

func bookedMessage(txID string, total float64) string {
	return fmt.Sprintf("Great! I've added this item to your cart (transaction %s). Your cart total is now $%.2f.", txID, total)
}

// Book resolves or creates the user's pending transaction, adds the selected
// item and reports the new cart total. Success clears the session; every failure
// leaves it exactly as it was.
func (s *DefaultBookingService) Book(ctx context.Context, state models.SessionState, identity string) (models.Reply, error) {
	itemID := state.SelectedID
	if itemID == "" {
		return notBooked(msgNoItemSelected, models.OutcomeNotBooked),
			newBookingError(CodeNoItemSelected, "session has no selected item", ErrNoItemSelected)
	}

	email := strings.TrimSpace(identity)
	if email == "" {
		return notBooked(msgNoIdentity, models.OutcomeNotBooked),
			newBookingError(CodeNoIdentity, "no email on request or conversation", ErrNoIdentity)
	}

	log := s.log().With(zap.String("item_id", itemID), zap.String("email", email))

	txID, err := s.resolveTransaction(ctx, email)
	if err != nil {
		log.Error("Cart resolution failed", zap.Error(err))
		return backendDown(), err
	}
	if txID == "" {
		log.Warn("No cart transaction obtainable")
		return notBooked(msgCartUnavailable, models.OutcomeNotBooked),
			newBookingError(CodeCartUnavailable, email, ErrCartUnavailable)
	}

	if err := s.Carts.AddItem(ctx, txID, itemID); err != nil {
		log.Error("Add to cart failed", zap.String("transaction_id", txID), zap.Error(err))
		return backendDown(), newBackendError("add item", err)
	}

	tx, err := s.Carts.Transaction(ctx, email)
	if err != nil {
		log.Error("Cart refetch failed", zap.String("transaction_id", txID), zap.Error(err))
		return backendDown(), newBackendError("fetch cart", err)
	}
	total := tx.Total()

	log.Info("Item added to cart",
		zap.String("transaction_id", txID),
		zap.Int("lines", len(tx.Items)),
		zap.Float64("total", total),
	)

	event := models.BookingEvent{
		ConversationID: conversationID(ctx),
		Email:          email,
		TransactionID:  txID,
		ItemID:         itemID,
		CartTotal:      total,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.events().PublishItemAdded(ctx, event); err != nil {
		log.Warn("Booking event not published", zap.Error(err))
	}

	return models.Reply{
		Text:    bookedMessage(txID, total),
		Outcome: models.OutcomeBooked,
		Cart: &models.CartSummary{
			TransactionID: txID,
			ItemCount:     len(tx.Items),
			Total:         total,
		},
		Patch: models.ClearSession(),
	}, nil
}

// resolveTransaction reuses the pending transaction of email or creates one.
// The lookup and the create are separate backend calls; the Mongo backend closes
// the gap with a unique pending index, the REST backend cannot.
func (s *DefaultBookingService) resolveTransaction(ctx context.Context, email string) (string, error) {
	txID, err := s.Carts.ActiveTransactionID(ctx, email)
	if err != nil {
		return "", newBackendError("lookup cart", err)
	}
	if txID != "" {
		return txID, nil
	}

	txID, err = s.Carts.CreateTransaction(ctx, email)
	if err != nil {
		return "", newBackendError("create cart", err)
	}
	s.log().Info("Created cart transaction", zap.String("transaction_id", txID))
	return txID, nil
}

func notBooked(text string, outcome models.Outcome) models.Reply {
	return models.Reply{Text: text, Outcome: outcome, Patch: models.NoChange()}
}

func backendDown() models.Reply {
	return notBooked(discovery.MsgBackendDown, models.OutcomeUnavailable)
}
