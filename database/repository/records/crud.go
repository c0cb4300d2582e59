package recordsRepo

import (
	"context"
	"time"

	"closetcircle/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventDoc struct {
	ID                  string `bson:"id"`
	models.BookingEvent `bson:",inline"`
}

func (r *mongoRecordRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "transactionId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

// Create inserts a booking event and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, event models.BookingEvent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	doc := eventDoc{ID: uuid.New().String(), BookingEvent: event}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetByTransactionID returns the events of one cart in the order they happened.
func (r *mongoRecordRepo) GetByTransactionID(ctx context.Context, transactionID string) ([]models.BookingEvent, error) {
	return r.find(ctx, bson.M{"transactionId": transactionID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

// GetByEmail returns a user's events, newest first.
func (r *mongoRecordRepo) GetByEmail(ctx context.Context, email string) ([]models.BookingEvent, error) {
	return r.find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoRecordRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.BookingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	events := make([]models.BookingEvent, len(docs))
	for i, d := range docs {
		events[i] = d.BookingEvent
	}
	return events, nil
}
