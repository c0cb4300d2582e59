package tasks

import (
	"testing"
	"time"

	"closetcircle/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemAddedTask(t *testing.T) {
	event := models.BookingEvent{
		ConversationID: "conv-1",
		Email:          "a@x.com",
		TransactionID:  "T1",
		ItemID:         "42",
		CartTotal:      19.99,
		CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	task, opts, err := NewCartItemAddedTask(event)
	require.NoError(t, err)
	assert.Equal(t, TypeCartItemAdded, task.Type())
	assert.NotEmpty(t, opts)

	got, err := ParseCartItemAdded(task)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestParseCartItemAddedRejectsBadPayload(t *testing.T) {
	_, err := ParseCartItemAdded(asynq.NewTask(TypeCartItemAdded, []byte("{")))
	assert.Error(t, err)

	_, err = ParseCartItemAdded(asynq.NewTask(TypeCartItemAdded, []byte(`{"email":"a@x.com"}`)))
	assert.Error(t, err)
}
