package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	commerceRepo "closetcircle/database/repository/commerce"
	"closetcircle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishItemAdded(_ context.Context, event models.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

var errDown = errors.New("dial tcp: i/o timeout")

func catalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "42", Title: "Black Sundress", Price: 25.10},
		{ID: "7", Title: "Red Running Shoes", Price: 40.20},
	}
}

func selected(id string) models.SessionState {
	return models.SessionState{MatchedIDs: []string{id}, Cursor: 0, SelectedID: id}
}

func TestBookIdempotentResolve(t *testing.T) {
	backend := commerceRepo.NewMockBackend(catalog()...)
	events := &recordingPublisher{}
	svc := NewBookingService(backend, events, nil)
	ctx := WithConversationID(context.Background(), "conv-1")

	first, err := svc.Book(ctx, selected("42"), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeBooked, first.Outcome)
	require.NotNil(t, first.Cart)
	assert.Equal(t, 25.10, first.Cart.Total)
	assert.Equal(t, models.PatchClear, first.Patch.Kind)

	second, err := svc.Book(ctx, selected("7"), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, second.Cart)

	assert.Equal(t, 1, backend.CreateCalls())
	assert.Equal(t, first.Cart.TransactionID, second.Cart.TransactionID)
	assert.Equal(t, 65.30, second.Cart.Total)
	assert.Equal(t, 2, second.Cart.ItemCount)
	assert.Equal(t, "Great! I've added this item to your cart (transaction T1). Your cart total is now $65.30.", second.Text)

	require.Len(t, events.events, 2)
	assert.Equal(t, "conv-1", events.events[1].ConversationID)
	assert.Equal(t, "7", events.events[1].ItemID)
	assert.Equal(t, 65.30, events.events[1].CartTotal)
}

func TestBookReusesExistingTransaction(t *testing.T) {
	backend := commerceRepo.NewMockBackend(catalog()...)
	backend.SeedTransaction("b@x.com", "T900", models.CartLine{ItemID: "1", Title: "Scarf", Price: 5})
	svc := NewBookingService(backend, nil, nil)

	reply, err := svc.Book(context.Background(), selected("7"), "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 0, backend.CreateCalls())
	assert.Equal(t, "T900", reply.Cart.TransactionID)
	assert.Equal(t, 45.20, reply.Cart.Total)
}

func TestBookPreconditions(t *testing.T) {
	backend := commerceRepo.NewMockBackend(catalog()...)
	svc := NewBookingService(backend, nil, nil)

	tests := []struct {
		name     string
		state    models.SessionState
		identity string
		want     error
		code     string
	}{
		{name: "no selected item", state: models.SessionState{}, identity: "a@x.com", want: ErrNoItemSelected, code: CodeNoItemSelected},
		{name: "selection checked before identity", state: models.SessionState{}, identity: "", want: ErrNoItemSelected, code: CodeNoItemSelected},
		{name: "no identity", state: selected("42"), identity: "  ", want: ErrNoIdentity, code: CodeNoIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := svc.Book(context.Background(), tt.state, tt.identity)
			require.ErrorIs(t, err, tt.want)

			var bookingErr *BookingError
			require.ErrorAs(t, err, &bookingErr)
			assert.Equal(t, tt.code, bookingErr.Code)
			assert.Equal(t, models.OutcomeNotBooked, reply.Outcome)
			assert.Equal(t, tt.state, reply.Patch.Apply(tt.state))
		})
	}
	assert.Equal(t, 0, backend.CreateCalls())
}

type emptyCreateCarts struct {
	*commerceRepo.MockBackend
}

func (emptyCreateCarts) CreateTransaction(context.Context, string) (string, error) { return "", nil }

func TestBookCartUnavailable(t *testing.T) {
	svc := NewBookingService(emptyCreateCarts{commerceRepo.NewMockBackend(catalog()...)}, nil, nil)
	state := selected("42")

	reply, err := svc.Book(context.Background(), state, "a@x.com")
	require.ErrorIs(t, err, ErrCartUnavailable)
	assert.Equal(t, state, reply.Patch.Apply(state))
	assert.Contains(t, reply.Text, "couldn't create or find an active cart")
}

func TestBookBackendFailuresLeaveSession(t *testing.T) {
	ops := []string{
		commerceRepo.OpActiveTransactionID,
		commerceRepo.OpCreateTransaction,
		commerceRepo.OpAddItem,
		commerceRepo.OpTransaction,
	}

	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			backend := commerceRepo.NewMockBackend(catalog()...)
			backend.FailOn(op, errDown)
			events := &recordingPublisher{}
			svc := NewBookingService(backend, events, nil)
			state := selected("42")

			reply, err := svc.Book(context.Background(), state, "a@x.com")
			require.ErrorIs(t, err, ErrBackendUnavailable)
			assert.ErrorIs(t, err, errDown)
			assert.Equal(t, models.OutcomeUnavailable, reply.Outcome)
			assert.Equal(t, state, reply.Patch.Apply(state))
			assert.Empty(t, events.events)
		})
	}
}

func TestBookPublishFailureIsNotFatal(t *testing.T) {
	backend := commerceRepo.NewMockBackend(catalog()...)
	svc := NewBookingService(backend, &recordingPublisher{err: errors.New("queue full")}, nil)

	reply, err := svc.Book(context.Background(), selected("42"), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeBooked, reply.Outcome)
}

func TestBookWithBareStruct(t *testing.T) {
	backend := commerceRepo.NewMockBackend(catalog()...)
	svc := &DefaultBookingService{Carts: backend}

	reply, err := svc.Book(context.Background(), selected("42"), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeBooked, reply.Outcome)
}
