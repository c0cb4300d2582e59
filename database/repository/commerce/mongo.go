package commerceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"closetcircle/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// transactionDoc is the stored shape of a cart transaction.
type transactionDoc struct {
	ID        string    `bson:"id"`
	Email     string    `bson:"email"`
	Status    string    `bson:"status"`
	ItemIDs   []string  `bson:"itemIds"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend serves the commerce contract straight from the marketplace database.
type MongoBackend struct {
	posts        *mongo.Collection
	transactions *mongo.Collection
	timeout      time.Duration
}

// NewMongoBackend creates a Mongo-backed commerce backend and ensures its indexes.
func NewMongoBackend(db *mongo.Database, timeout time.Duration) (*MongoBackend, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	b := &MongoBackend{
		posts:        db.Collection("posts"),
		transactions: db.Collection("transactions"),
		timeout:      timeout,
	}
	if err := b.ensureIndexes(); err != nil {
		return nil, err
	}
	return b, nil
}

// ensureIndexes creates the lookup indexes and the one-pending-cart-per-email constraint.
func (b *MongoBackend) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := b.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create posts index: %w", err)
	}

	txIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_pending_per_email").
				SetPartialFilterExpression(bson.M{"status": models.TransactionPending}),
		},
	}
	if _, err := b.transactions.Indexes().CreateMany(ctx, txIndexes); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}
	return nil
}

// ListItems returns every post in insertion order.
func (b *MongoBackend) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cursor, err := b.posts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.CatalogItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return items, nil
}

// GetItem returns a single post by id.
func (b *MongoBackend) GetItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var item models.CatalogItem
	err := b.posts.FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}
	return &item, nil
}

// ActiveTransactionID returns the pending transaction id of email, or "".
func (b *MongoBackend) ActiveTransactionID(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	doc, err := b.pending(ctx, email)
	if err != nil || doc == nil {
		return "", err
	}
	return doc.ID, nil
}

// CreateTransaction inserts a pending transaction. If a concurrent booking already
// created one for the same email, the unique index rejects the insert and the
// existing id is returned instead.
func (b *MongoBackend) CreateTransaction(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	now := time.Now()
	doc := transactionDoc{
		ID:        uuid.New().String(),
		Email:     email,
		Status:    models.TransactionPending,
		ItemIDs:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := b.transactions.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		existing, findErr := b.pending(ctx, email)
		if findErr != nil {
			return "", findErr
		}
		if existing != nil {
			return existing.ID, nil
		}
		return "", fmt.Errorf("pending transaction for %s vanished after duplicate insert", email)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}
	return doc.ID, nil
}

// AddItem adds itemID to the transaction; adding the same item twice is a no-op.
func (b *MongoBackend) AddItem(ctx context.Context, transactionID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	res, err := b.transactions.UpdateOne(ctx,
		bson.M{"id": transactionID, "status": models.TransactionPending},
		bson.M{
			"$addToSet": bson.M{"itemIds": itemID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add item to transaction %s: %w", transactionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pending transaction %s not found", transactionID)
	}
	return nil
}

// Transaction returns the pending cart of email with current prices.
func (b *MongoBackend) Transaction(ctx context.Context, email string) (*models.CartTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	doc, err := b.pending(ctx, email)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return &models.CartTransaction{Email: email, Items: []models.CartLine{}}, nil
	}

	tx := &models.CartTransaction{ID: doc.ID, Email: email, Items: make([]models.CartLine, 0, len(doc.ItemIDs))}
	if len(doc.ItemIDs) == 0 {
		return tx, nil
	}

	cursor, err := b.posts.Find(ctx, bson.M{"id": bson.M{"$in": doc.ItemIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.CatalogItem
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode cart posts: %w", err)
	}
	byID := make(map[string]models.CatalogItem, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	// Items deleted from the catalog drop out of the cart, as on the website.
	for _, id := range doc.ItemIDs {
		if p, ok := byID[id]; ok {
			tx.Items = append(tx.Items, models.CartLine{ItemID: id, Title: p.Title, Price: p.Price})
		}
	}
	return tx, nil
}

func (b *MongoBackend) pending(ctx context.Context, email string) (*transactionDoc, error) {
	var doc transactionDoc
	err := b.transactions.FindOne(ctx, bson.M{"email": email, "status": models.TransactionPending}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending transaction: %w", err)
	}
	return &doc, nil
}

var _ Backend = (*MongoBackend)(nil)
