package booking

import (
	"context"
	"fmt"

	"closetcircle/models"
	"closetcircle/services/tasks"

	"github.com/hibiken/asynq"
)

// EventPublisher announces completed bookings to background workers.
type EventPublisher interface {
	PublishItemAdded(ctx context.Context, event models.BookingEvent) error
}

// AsynqPublisher enqueues booking events on the asynq queue.
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

func (p *AsynqPublisher) PublishItemAdded(ctx context.Context, event models.BookingEvent) error {
	task, opts, err := tasks.NewCartItemAddedTask(event)
	if err != nil {
		return err
	}
	if _, err := p.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", tasks.TypeCartItemAdded, err)
	}
	return nil
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishItemAdded(context.Context, models.BookingEvent) error { return nil }
