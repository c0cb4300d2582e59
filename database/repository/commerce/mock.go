package commerceRepo

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"closetcircle/models"
)

// Operation names accepted by MockBackend.FailOn.
const (
	OpListItems           = "ListItems"
	OpGetItem             = "GetItem"
	OpActiveTransactionID = "ActiveTransactionID"
	OpCreateTransaction   = "CreateTransaction"
	OpAddItem             = "AddItem"
	OpTransaction         = "Transaction"
)

// MockBackend is an in-memory Backend for tests.
type MockBackend struct {
	mu          sync.RWMutex
	items       []models.CatalogItem
	pending     map[string]*models.CartTransaction // by email
	nextTxID    int
	failures    map[string]error
	createCalls int
}

// NewMockBackend creates a MockBackend holding a copy of items.
func NewMockBackend(items ...models.CatalogItem) *MockBackend {
	m := &MockBackend{
		pending:  make(map[string]*models.CartTransaction),
		failures: make(map[string]error),
		nextTxID: 1,
	}
	m.SetItems(items...)
	return m
}

// SetItems replaces the catalog.
func (m *MockBackend) SetItems(items ...models.CatalogItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]models.CatalogItem(nil), items...)
}

// FailOn makes op return err until cleared with a nil err.
func (m *MockBackend) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// SeedTransaction gives email an existing pending transaction.
func (m *MockBackend) SeedTransaction(email, id string, lines ...models.CartLine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[email] = &models.CartTransaction{ID: id, Email: email, Items: append([]models.CartLine{}, lines...)}
}

// CreateCalls returns how many transactions were created.
func (m *MockBackend) CreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

func (m *MockBackend) fail(op string) error {
	if err, ok := m.failures[op]; ok {
		return err
	}
	return nil
}

func (m *MockBackend) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(OpListItems); err != nil {
		return nil, err
	}
	return append([]models.CatalogItem(nil), m.items...), nil
}

func (m *MockBackend) GetItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(OpGetItem); err != nil {
		return nil, err
	}
	for _, item := range m.items {
		if item.ID == id {
			copy := item
			return &copy, nil
		}
	}
	return nil, ErrItemNotFound
}

func (m *MockBackend) ActiveTransactionID(ctx context.Context, email string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(OpActiveTransactionID); err != nil {
		return "", err
	}
	if tx, ok := m.pending[email]; ok {
		return tx.ID, nil
	}
	return "", nil
}

func (m *MockBackend) CreateTransaction(ctx context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(OpCreateTransaction); err != nil {
		return "", err
	}
	m.createCalls++
	id := "T" + strconv.Itoa(m.nextTxID)
	m.nextTxID++
	m.pending[email] = &models.CartTransaction{ID: id, Email: email, Items: []models.CartLine{}}
	return id, nil
}

func (m *MockBackend) AddItem(ctx context.Context, transactionID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(OpAddItem); err != nil {
		return err
	}
	var tx *models.CartTransaction
	for _, t := range m.pending {
		if t.ID == transactionID {
			tx = t
			break
		}
	}
	if tx == nil {
		return fmt.Errorf("transaction %s not found", transactionID)
	}
	for _, item := range m.items {
		if item.ID == itemID {
			tx.Items = append(tx.Items, models.CartLine{ItemID: item.ID, Title: item.Title, Price: item.Price})
			return nil
		}
	}
	return fmt.Errorf("item %s not found", itemID)
}

func (m *MockBackend) Transaction(ctx context.Context, email string) (*models.CartTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(OpTransaction); err != nil {
		return nil, err
	}
	tx, ok := m.pending[email]
	if !ok {
		return &models.CartTransaction{Email: email, Items: []models.CartLine{}}, nil
	}
	copy := *tx
	copy.Items = append([]models.CartLine{}, tx.Items...)
	return &copy, nil
}

// Ensure MockBackend implements Backend
var _ Backend = (*MockBackend)(nil)
