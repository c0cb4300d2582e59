package cron

import (
	"context"
	"time"

	"closetcircle/config"
	recordsRepo "closetcircle/database/repository/records"
	"closetcircle/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitBookingEventWorker runs the cart event consumer in background. Every
// cart:item_added task is appended to the booking event log.
func InitBookingEventWorker(ctx context.Context, repo recordsRepo.BookingEventRepository, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCartItemAdded, handleCartItemAddedTask(repo, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("Starting booking event worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Booking event worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("max_attempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Booking event worker gave up; cart events will queue until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleCartItemAddedTask(repo recordsRepo.BookingEventRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		event, err := tasks.ParseCartItemAdded(task)
		if err != nil {
			logger.Warn("Dropping malformed cart event", zap.Error(err))
			// Retrying a malformed payload never succeeds.
			return asynq.SkipRetry
		}

		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now().UTC()
		}
		id, err := repo.Create(ctx, event)
		if err != nil {
			logger.Error("Failed to record booking event",
				zap.String("transaction_id", event.TransactionID),
				zap.String("item_id", event.ItemID),
				zap.Error(err),
			)
			return err
		}

		logger.Info("Booking event recorded",
			zap.String("event_id", id),
			zap.String("transaction_id", event.TransactionID),
			zap.String("item_id", event.ItemID),
			zap.Float64("cart_total", event.CartTotal),
		)
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
