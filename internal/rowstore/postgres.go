package rowstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

const queryTimeout = 3 * time.Second

// PostgresStore keeps every table as a SQL table with one TEXT column per
// header. Storage order is kept by the row_position sequence.
type PostgresStore struct {
	db *sql.DB

	mu      sync.Mutex
	created map[string]bool
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, created: map[string]bool{}}
}

// Table returns the SQL table backing name, creating it if absent.
func (s *PostgresStore) Table(ctx context.Context, name string) (Table, error) {
	headers, err := HeadersFor(name)
	if err != nil {
		return nil, err
	}
	t := &postgresTable{db: s.db, name: name, headers: headers}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created[name] {
		return t, nil
	}

	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", pgx.Identifier{h}.Sanitize())
	}
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (row_position BIGSERIAL PRIMARY KEY, %s)",
		t.ident(), strings.Join(cols, ", "),
	)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}
	s.created[name] = true
	return t, nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type postgresTable struct {
	db      *sql.DB
	name    string
	headers []string
}

func (t *postgresTable) Name() string { return t.name }

func (t *postgresTable) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

func (t *postgresTable) ident() string {
	return pgx.Identifier{"sheet_" + strings.ToLower(t.name)}.Sanitize()
}

func (t *postgresTable) columnList() string {
	cols := make([]string, len(t.headers))
	for i, h := range t.headers {
		cols[i] = pgx.Identifier{h}.Sanitize()
	}
	return strings.Join(cols, ", ")
}

func (t *postgresTable) Rows(ctx context.Context) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY row_position", t.columnList(), t.ident())
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		cells := make([]string, len(t.headers))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, fromCells(t.headers, cells))
	}

	// Check for iteration errors
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *postgresTable) Append(ctx context.Context, row Row) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	placeholders := make([]string, len(t.headers))
	for i := range t.headers {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.ident(), t.columnList(), strings.Join(placeholders, ", "))

	if _, err := t.db.ExecContext(ctx, query, cellArgs(t.headers, row)...); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.name, err)
	}
	return nil
}

func (t *postgresTable) Update(ctx context.Context, position int, row Row) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rowPos, err := t.rowPosition(ctx, position)
	if err != nil {
		return err
	}

	sets := make([]string, len(t.headers))
	for i, h := range t.headers {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{h}.Sanitize(), i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE row_position = $%d", t.ident(), strings.Join(sets, ", "), len(t.headers)+1)

	args := append(cellArgs(t.headers, row), rowPos)
	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", t.name, err)
	}
	return nil
}

func (t *postgresTable) Delete(ctx context.Context, position int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rowPos, err := t.rowPosition(ctx, position)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE row_position = $1", t.ident())
	if _, err := t.db.ExecContext(ctx, query, rowPos); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	return nil
}

// rowPosition maps a 0-based data position to the row_position key.
func (t *postgresTable) rowPosition(ctx context.Context, position int) (int64, error) {
	if position < 0 {
		return 0, ErrRowOutOfRange
	}
	query := fmt.Sprintf("SELECT row_position FROM %s ORDER BY row_position OFFSET $1 LIMIT 1", t.ident())

	var rowPos int64
	err := t.db.QueryRowContext(ctx, query, position).Scan(&rowPos)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRowOutOfRange
	}
	if err != nil {
		return 0, fmt.Errorf("failed to locate row in %s: %w", t.name, err)
	}
	return rowPos, nil
}

func cellArgs(headers []string, row Row) []any {
	cells := toCells(headers, row)
	args := make([]any, len(cells))
	for i, c := range cells {
		args[i] = c
	}
	return args
}
