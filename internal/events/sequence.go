package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

var ErrNoPartition = errors.New("partition key is required")

// SequenceRepository numbers the events of one partition 1, 2, 3, ...
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLSequence keeps the last issued number per partition in event_sequences.
// The increment is a single upsert, so two publishers never get the same number.
type SQLSequence struct {
	db rowQuerier
}

func NewSequenceRepository(db *sql.DB) *SQLSequence {
	return &SQLSequence{db: db}
}

const nextSequenceSQL = `
INSERT INTO event_sequences AS s (partition_key, last_sequence)
VALUES ($1, 1)
ON CONFLICT (partition_key)
DO UPDATE SET last_sequence = s.last_sequence + 1, updated_at = now()
RETURNING last_sequence`

func (r *SQLSequence) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, ErrNoPartition
	}
	var seq int64
	if err := r.db.QueryRowContext(ctx, nextSequenceSQL, partitionKey).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", partitionKey, err)
	}
	return seq, nil
}

// MemorySequence is used when no database is configured. Numbers restart
// with the process.
type MemorySequence struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{last: map[string]int64{}}
}

func (m *MemorySequence) NextSequence(_ context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, ErrNoPartition
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[partitionKey]++
	return m.last[partitionKey], nil
}
