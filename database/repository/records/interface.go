package recordsRepo

import (
	"context"
	"time"

	"closetcircle/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingEventRepository is the append-only log of items added to carts.
type BookingEventRepository interface {
	Create(ctx context.Context, event models.BookingEvent) (string, error)
	GetByTransactionID(ctx context.Context, transactionID string) ([]models.BookingEvent, error)
	GetByEmail(ctx context.Context, email string) ([]models.BookingEvent, error)
}

type mongoRecordRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRecordRepo returns a BookingEventRepository backed by the booking_events collection.
func NewMongoRecordRepo(db *mongo.Database, timeout time.Duration) (BookingEventRepository, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	repo := &mongoRecordRepo{
		coll:    db.Collection("booking_events"),
		timeout: timeout,
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}
