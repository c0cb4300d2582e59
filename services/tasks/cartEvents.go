package tasks

import (
	"encoding/json"
	"fmt"

	"closetcircle/models"

	"github.com/hibiken/asynq"
)

const TypeCartItemAdded = "cart:item_added"

// NewCartItemAddedTask wraps a booking event into an asynq task.
func NewCartItemAddedTask(event models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCartItemAdded, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Queue("default")}

	return task, opts, nil
}

// ParseCartItemAdded decodes the payload of a cart:item_added task.
func ParseCartItemAdded(task *asynq.Task) (models.BookingEvent, error) {
	var event models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("invalid %s payload: %w", TypeCartItemAdded, err)
	}
	if event.TransactionID == "" || event.ItemID == "" {
		return event, fmt.Errorf("invalid %s payload: missing transaction or item", TypeCartItemAdded)
	}
	return event, nil
}
