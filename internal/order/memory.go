package order

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps orders for the lifetime of the process.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: map[string]Order{}}
}

func (m *MemoryRepository) Create(_ context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)

	m.mu.Lock()
	m.orders[o.ID] = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, orderID string) (*Order, error) {
	m.mu.RLock()
	o, ok := m.orders[orderID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *MemoryRepository) ListBySession(_ context.Context, sessionID string) ([]Order, error) {
	m.mu.RLock()
	out := []Order{}
	for _, o := range m.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
