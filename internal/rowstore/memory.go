package rowstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*memoryTable
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: map[string]*memoryTable{}}
}

// Table returns the named table, creating it with its header row if absent.
func (s *MemoryStore) Table(_ context.Context, name string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[name]; ok {
		return t, nil
	}
	headers, err := HeadersFor(name)
	if err != nil {
		return nil, err
	}
	t := &memoryTable{name: name, headers: headers, rows: [][]string{}}
	s.tables[name] = t
	return t, nil
}

// Clear drops every row of every table, keeping the headers.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		t.mu.Lock()
		t.rows = [][]string{}
		t.mu.Unlock()
	}
}

func (s *MemoryStore) Close() error { return nil }

type memoryTable struct {
	mu      sync.Mutex
	name    string
	headers []string
	rows    [][]string
}

func (t *memoryTable) Name() string { return t.name }

func (t *memoryTable) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

func (t *memoryTable) Rows(_ context.Context) ([]Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]Row, len(t.rows))
	for i, cells := range t.rows {
		rows[i] = fromCells(t.headers, cells)
	}
	return rows, nil
}

func (t *memoryTable) Append(_ context.Context, row Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, toCells(t.headers, row))
	return nil
}

func (t *memoryTable) Update(_ context.Context, position int, row Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if position < 0 || position >= len(t.rows) {
		return ErrRowOutOfRange
	}
	t.rows[position] = toCells(t.headers, row)
	return nil
}

func (t *memoryTable) Delete(_ context.Context, position int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if position < 0 || position >= len(t.rows) {
		return ErrRowOutOfRange
	}
	t.rows = append(t.rows[:position], t.rows[position+1:]...)
	return nil
}
