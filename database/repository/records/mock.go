package recordsRepo

import (
	"context"
	"strconv"
	"sync"

	"closetcircle/models"
)

// MockRecordRepo is an in-memory BookingEventRepository for tests.
type MockRecordRepo struct {
	mu     sync.RWMutex
	events []models.BookingEvent
	Err    error
}

func NewMockRecordRepo() *MockRecordRepo {
	return &MockRecordRepo{}
}

func (m *MockRecordRepo) Create(_ context.Context, event models.BookingEvent) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.events = append(m.events, event)
	return strconv.Itoa(len(m.events)), nil
}

func (m *MockRecordRepo) GetByTransactionID(_ context.Context, transactionID string) ([]models.BookingEvent, error) {
	return m.filter(func(e models.BookingEvent) bool { return e.TransactionID == transactionID }), nil
}

func (m *MockRecordRepo) GetByEmail(_ context.Context, email string) ([]models.BookingEvent, error) {
	out := m.filter(func(e models.BookingEvent) bool { return e.Email == email })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (m *MockRecordRepo) filter(keep func(models.BookingEvent) bool) []models.BookingEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.BookingEvent
	for _, e := range m.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

var _ BookingEventRepository = (*MockRecordRepo)(nil)
