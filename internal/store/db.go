package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"

	"github.com/baxromumarov/lead-sieve/internal/keywords"
)

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func clampLimit(limit int, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Batch is one uploaded CSV file together with its filter outcome.
type Batch struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Columns   []string  `json:"columns"`
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	CreatedAt time.Time `json:"created_at"`
}

// Lead is a single row of an uploaded batch with its relevance verdict.
// Fields preserves the row's original column values in upload order so
// exports can reproduce the source file.
type Lead struct {
	ID       int      `json:"id"`
	BatchID  string   `json:"batch_id"`
	RowNum   int      `json:"row_num"`
	Headline string   `json:"headline"`
	Position string   `json:"position"`
	Relevant bool     `json:"relevant"`
	Fields   []string `json:"fields,omitempty"`
}

// LoadKeywords returns the keyword list of the given kind. Callers reload
// per filtering pass rather than caching.
func (s *Store) LoadKeywords(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word FROM lead_keywords WHERE kind = $1 ORDER BY word
`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// AddKeywords appends normalized keywords to a list, skipping duplicates
// and blanks, and reports how many rows were actually inserted.
func (s *Store) AddKeywords(ctx context.Context, kind string, words []string) (int, error) {
	added := 0
	for _, w := range words {
		w = keywords.Normalize(w)
		if w == "" {
			continue
		}
		res, err := s.db.ExecContext(ctx, `
INSERT INTO lead_keywords (word, kind, added_at)
VALUES ($1, $2, NOW())
ON CONFLICT (word, kind) DO NOTHING
`, w, kind)
		if err != nil {
			return added, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, err
		}
		added += int(n)
	}
	return added, nil
}

// SaveBatch stores a batch and all of its leads in one transaction.
func (s *Store) SaveBatch(ctx context.Context, batch Batch, leads []Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO batches (id, filename, columns, total, passed, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
`, batch.ID, batch.Filename, pq.Array(batch.Columns), batch.Total, batch.Passed); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO leads (batch_id, row_num, headline, current_position, relevant, fields)
VALUES ($1, $2, $3, $4, $5, $6)
`)
	if err != nil {
		return fmt.Errorf("failed to prepare lead insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range leads {
		if _, err := stmt.ExecContext(ctx, batch.ID, l.RowNum, l.Headline, l.Position, l.Relevant, pq.Array(l.Fields)); err != nil {
			return fmt.Errorf("failed to insert lead %d: %w", l.RowNum, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetBatch(ctx context.Context, id string) (*Batch, error) {
	var b Batch
	err := s.db.QueryRowContext(ctx, `
SELECT id, filename, columns, total, passed, created_at
FROM batches
WHERE id = $1
`, id).Scan(&b.ID, &b.Filename, pq.Array(&b.Columns), &b.Total, &b.Passed, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBatches(ctx context.Context, limit, offset int) ([]Batch, int, error) {
	limit = clampLimit(limit, 20, 200)
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM batches`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, filename, columns, total, passed, created_at
FROM batches
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Filename, pq.Array(&b.Columns), &b.Total, &b.Passed, &b.CreatedAt); err != nil {
			return nil, 0, err
		}
		batches = append(batches, b)
	}
	return batches, total, rows.Err()
}

// GetLeads lists a batch's leads in upload order. A nil relevant returns
// both partitions.
func (s *Store) GetLeads(ctx context.Context, batchID string, relevant *bool, limit, offset int) ([]Lead, int, error) {
	limit = clampLimit(limit, 50, 1000)
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM leads WHERE batch_id = $1`
	listQuery := `
SELECT id, batch_id, row_num, headline, current_position, relevant, fields
FROM leads
WHERE batch_id = $1
`
	args := []interface{}{batchID}
	if relevant != nil {
		countQuery += ` AND relevant = $2`
		listQuery += ` AND relevant = $2`
		args = append(args, *relevant)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += fmt.Sprintf(" ORDER BY row_num LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.BatchID, &l.RowNum, &l.Headline, &l.Position, &l.Relevant, pq.Array(&l.Fields)); err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}
	return leads, total, rows.Err()
}

// GetBatchLeads returns every lead of a batch in upload order, for export.
func (s *Store) GetBatchLeads(ctx context.Context, batchID string, relevant *bool) ([]Lead, error) {
	query := `
SELECT id, batch_id, row_num, headline, current_position, relevant, fields
FROM leads
WHERE batch_id = $1
`
	args := []interface{}{batchID}
	if relevant != nil {
		query += ` AND relevant = $2`
		args = append(args, *relevant)
	}
	query += ` ORDER BY row_num`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.BatchID, &l.RowNum, &l.Headline, &l.Position, &l.Relevant, pq.Array(&l.Fields)); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (s *Store) DeleteOldBatches(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, `
DELETE FROM batches
WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
