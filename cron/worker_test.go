package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	recordsRepo "closetcircle/database/repository/records"
	"closetcircle/models"
	"closetcircle/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleCartItemAddedRecordsEvent(t *testing.T) {
	repo := recordsRepo.NewMockRecordRepo()
	handler := handleCartItemAddedTask(repo, zap.NewNop())

	task, _, err := tasks.NewCartItemAddedTask(models.BookingEvent{
		ConversationID: "conv-1",
		Email:          "ann@example.com",
		TransactionID:  "T1",
		ItemID:         "42",
		CartTotal:      25.1,
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))

	events, err := repo.GetByTransactionID(context.Background(), "T1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "42", events[0].ItemID)
	assert.Equal(t, "conv-1", events[0].ConversationID)
	assert.WithinDuration(t, time.Now(), events[0].CreatedAt, time.Minute)
}

func TestHandleCartItemAddedSkipsMalformed(t *testing.T) {
	repo := recordsRepo.NewMockRecordRepo()
	handler := handleCartItemAddedTask(repo, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeCartItemAdded, []byte(`{"itemId":"42"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	events, _ := repo.GetByEmail(context.Background(), "")
	assert.Empty(t, events)
}

func TestHandleCartItemAddedRetriesStoreFailure(t *testing.T) {
	repo := recordsRepo.NewMockRecordRepo()
	repo.Err = errors.New("mongo down")
	handler := handleCartItemAddedTask(repo, zap.NewNop())

	task, _, err := tasks.NewCartItemAddedTask(models.BookingEvent{TransactionID: "T1", ItemID: "7"})
	require.NoError(t, err)

	err = handler(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
