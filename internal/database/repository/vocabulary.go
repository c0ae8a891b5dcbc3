package repository

import (
	"context"
	"database/sql"
	"errors"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// VocabularyRepo handles vocabulary entries.
type VocabularyRepo struct {
	db querier
}

func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db}
}

// Tx returns a repo whose statements run inside tx.
func (r *VocabularyRepo) Tx(tx *sql.Tx) *VocabularyRepo {
	return &VocabularyRepo{db: tx}
}

func (r *VocabularyRepo) Insert(ctx context.Context, e VocabularyEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO vocabulary_entries(id, category, text, content_hash, created_at)
	VALUES (?, ?, ?, ?, ?)`, e.ID, e.Category, e.Text, e.ContentHash, e.CreatedAt)
	return err
}

// List returns the entries of one category, oldest first.
func (r *VocabularyRepo) List(ctx context.Context, category string) ([]VocabularyEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, category, text, content_hash, created_at
	FROM vocabulary_entries WHERE category = ?
	ORDER BY created_at, text`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VocabularyEntry
	for rows.Next() {
		var e VocabularyEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.Text, &e.ContentHash, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAll returns every entry grouped by category order then age.
func (r *VocabularyRepo) ListAll(ctx context.Context) ([]VocabularyEntry, error) {
	var out []VocabularyEntry
	for _, c := range Categories() {
		list, err := r.List(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

// Counts returns the number of entries per category. Categories without
// entries are present with a zero count.
func (r *VocabularyRepo) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, len(Categories()))
	for _, c := range Categories() {
		out[c] = 0
	}
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM vocabulary_entries GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, rows.Err()
}

// ByHash finds an entry of category with the given content hash. It returns
// nil, nil when there is none.
func (r *VocabularyRepo) ByHash(ctx context.Context, category, hash string) (*VocabularyEntry, error) {
	var e VocabularyEntry
	err := r.db.QueryRowContext(ctx, `
	SELECT id, category, text, content_hash, created_at
	FROM vocabulary_entries WHERE category = ? AND content_hash = ?`, category, hash).
		Scan(&e.ID, &e.Category, &e.Text, &e.ContentHash, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes one entry. It reports whether a row was removed.
func (r *VocabularyRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *VocabularyRepo) DeleteCategory(ctx context.Context, category string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary_entries WHERE category = ?`, category)
	return err
}
