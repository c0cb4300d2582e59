package commerceRepo

import (
	"context"
	"errors"

	"closetcircle/models"
)

// ErrItemNotFound is returned when an item id is no longer in the catalog.
var ErrItemNotFound = errors.New("item not found")

// CatalogRepository reads the postable catalog. Implementations must not cache.
type CatalogRepository interface {
	// ListItems returns every postable item in backend order.
	ListItems(ctx context.Context) ([]models.CatalogItem, error)
	// GetItem returns the current version of a single item or ErrItemNotFound.
	GetItem(ctx context.Context, id string) (*models.CatalogItem, error)
}

// CartRepository exposes the cart endpoints of the commerce backend.
type CartRepository interface {
	// ActiveTransactionID returns the pending transaction of email, or "" when there is none.
	ActiveTransactionID(ctx context.Context, email string) (string, error)
	// CreateTransaction opens a pending transaction for email and returns its id.
	CreateTransaction(ctx context.Context, email string) (string, error)
	// AddItem appends an item to a transaction.
	AddItem(ctx context.Context, transactionID, itemID string) error
	// Transaction returns the pending transaction of email with its current lines.
	Transaction(ctx context.Context, email string) (*models.CartTransaction, error)
}

// Backend is the full commerce backend contract consumed by the assistant.
type Backend interface {
	CatalogRepository
	CartRepository
}
