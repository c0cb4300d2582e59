package ai

import (
	"context"
	"testing"
	"time"

	"closetcircle/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisContextStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisContextStore(client, 30*time.Minute), mr
}

func TestContextStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	conv, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", conv.ID)
	assert.True(t, conv.Session.IsCleared())

	name := "zara"
	conv.Email = "a@x.com"
	conv.Session = models.SessionState{
		Criteria:   &models.FilterCriteria{Name: &name, Colors: []int{10}},
		MatchedIDs: []string{"4", "9"},
		Cursor:     1,
		SelectedID: "9",
	}
	require.NoError(t, store.Set(ctx, conv))
	assert.True(t, mr.Exists(conversationPrefix+"c1"))
	assert.Equal(t, 30*time.Minute, mr.TTL(conversationPrefix+"c1"))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, conv.Session, got.Session)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestContextStoreClearSessionKeepsEmail(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.Conversation{
		ID:      "c2",
		Email:   "b@x.com",
		Session: models.SessionState{MatchedIDs: []string{"1"}, SelectedID: "1"},
	}))
	require.NoError(t, store.ClearSession(ctx, "c2"))

	got, err := store.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", got.Email)
	assert.True(t, got.Session.IsCleared())
}

func TestContextStorePartitionsConversations(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.Conversation{ID: "left", Session: models.SessionState{SelectedID: "1", MatchedIDs: []string{"1"}}}))
	require.NoError(t, store.Clear(ctx, "right"))

	left, err := store.Get(ctx, "left")
	require.NoError(t, err)
	assert.Equal(t, "1", left.Session.SelectedID)

	require.NoError(t, store.Clear(ctx, "left"))
	left, err = store.Get(ctx, "left")
	require.NoError(t, err)
	assert.True(t, left.Session.IsCleared())
}

func TestContextStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "c3")
	assert.Error(t, err)
}
