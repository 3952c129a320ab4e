// Package memory provides the process-lifetime user table.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-table-service/internal/domain/user"
)

// Option configures a UserTable.
type Option func(*UserTable)

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(t *UserTable) {
		t.newID = fn
	}
}

// UserTable is an ordered, in-memory collection of users.
// Records keep insertion order; index maps an ID to its position in records.
type UserTable struct {
	mu      sync.RWMutex
	records []domain.User
	index   map[string]int
	newID   func() string
	log     *zap.Logger
}

// NewUserTable creates an empty table.
func NewUserTable(log *zap.Logger, opts ...Option) *UserTable {
	t := &UserTable{
		records: make([]domain.User, 0),
		index:   make(map[string]int),
		newID:   uuid.NewString,
		log:     log,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// List returns a copy of every record in insertion order.
func (t *UserTable) List(ctx context.Context) ([]domain.User, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.User, len(t.records))
	copy(out, t.records)
	return out, nil
}

// Create appends a new record with a freshly generated ID.
func (t *UserTable) Create(ctx context.Context, name, email string) (*domain.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := domain.User{
		ID:    t.newID(),
		Name:  name,
		Email: email,
	}
	t.index[u.ID] = len(t.records)
	t.records = append(t.records, u)

	t.log.Debug("user appended to table", zap.String("id", u.ID), zap.Int("size", len(t.records)))
	return &u, nil
}

// UpdateByID replaces name and email of the record with the given ID in place.
func (t *UserTable) UpdateByID(ctx context.Context, id, name, email string) (*domain.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	u := domain.User{
		ID:    id,
		Name:  name,
		Email: email,
	}
	t.records[pos] = u

	t.log.Debug("user replaced in table", zap.String("id", id), zap.Int("position", pos))
	return &u, nil
}

// DeleteByID removes the record with the given ID, shifting later records down.
func (t *UserTable) DeleteByID(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[id]
	if !ok {
		return domain.ErrNotFound
	}

	t.records = append(t.records[:pos], t.records[pos+1:]...)
	delete(t.index, id)
	for i := pos; i < len(t.records); i++ {
		t.index[t.records[i].ID] = i
	}

	t.log.Debug("user removed from table", zap.String("id", id), zap.Int("size", len(t.records)))
	return nil
}

// Len returns the number of records.
func (t *UserTable) Len(ctx context.Context) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
